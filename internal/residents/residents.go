// Package residents maintains the residents collection. A resident record is
// created when a lead's agreement is signed; the record lives in its own
// store key and shares the key-value collection contract with the other
// modules.
package residents

import (
	"context"

	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
)

// CollectionKey is the store key holding the resident collection.
const CollectionKey = "residents"

// Resident is the admitted-resident record derived from a signed agreement.
type Resident struct {
	ID              string `json:"id"` // the originating lead id
	Name            string `json:"name"`
	PersonalCode    string `json:"personalCode,omitempty"`
	BirthDate       string `json:"birthDate,omitempty"`
	AgreementNumber string `json:"agreementNumber"`
	AdmissionDate   string `json:"admissionDate,omitempty"`
	CareLevel       string `json:"careLevel,omitempty"`
	RoomType        string `json:"roomType,omitempty"`
	HasDementia     bool   `json:"hasDementia"`
}

type Repository struct {
	residents *kvstore.Collection[Resident]
}

func New(store kvstore.Store, log *logger.Logger) *Repository {
	return &Repository{
		residents: kvstore.NewCollection(store, log, CollectionKey, func(r Resident) string {
			return r.ID
		}),
	}
}

func (r *Repository) All(ctx context.Context) []Resident {
	return r.residents.All(ctx)
}

func (r *Repository) FindByID(ctx context.Context, id string) (Resident, bool) {
	return r.residents.FindByID(ctx, id)
}

// Upsert records the resident. This is the second write of the agreement
// flow: the lead update and this write are separate keys with no shared
// transaction, so a crash in between leaves a signed lead without a resident
// record until the next agreement re-run.
func (r *Repository) Upsert(ctx context.Context, resident Resident) {
	r.residents.Upsert(ctx, resident)
}
