// Package email generates the outgoing message texts for the intake
// workflow. Generation is pure: nothing here sends anything. Callers own the
// transport (copy to clipboard, mark as sent, or the SMTP sender in this
// package).
package email

import (
	"errors"
	"fmt"
	"strings"

	"care_portal_backend/internal/leads/domain"
)

// Message is generated subject/body text.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Missing consultation data or an unknown fill scenario is a programmer
// error: the UI must not request these emails before the consultation step.
var (
	ErrNoConsultation      = errors.New("lead has no consultation data")
	ErrUnknownFillScenario = errors.New("unknown fill scenario")
)

const (
	subjectInPersonFmt   = "Anketas aizpilde klātienē — %s"
	subjectRemoteFmt     = "Anketas aizpilde attālināti — %s"
	subjectQueueOfferFmt = "Piedāvājums no rindas — %s"
)

// ConsultationEmail builds the follow-up message after a consultation. The
// scenario is taken from consultation.fillScenario: in-person invites the
// client to review and sign the survey at the facility, remote asks them to
// fill it in themselves.
func ConsultationEmail(lead domain.Lead, facility string) (Message, error) {
	c := lead.Consultation
	if c == nil {
		return Message{}, ErrNoConsultation
	}

	switch c.FillScenario {
	case domain.FillInPerson:
		return Message{
			Subject: fmt.Sprintf(subjectInPersonFmt, facility),
			Body: joinLines(
				greeting(lead),
				"",
				fmt.Sprintf("Paldies par sarunu par uzturēšanos pansionātā %s.", facility),
				"Aicinām Jūs ierasties klātienē, lai kopā aizpildītu un pārskatītu anketu līguma sagatavošanai.",
				priceLine(c),
				"",
				"Lūdzu, sazinieties ar mums, lai vienotos par apmeklējuma laiku.",
				signature(facility),
			),
		}, nil
	case domain.FillRemote:
		return Message{
			Subject: fmt.Sprintf(subjectRemoteFmt, facility),
			Body: joinLines(
				greeting(lead),
				"",
				fmt.Sprintf("Paldies par sarunu par uzturēšanos pansionātā %s.", facility),
				"Nosūtām Jums anketu attālinātai aizpildei. Lūdzu, aizpildiet to un nosūtiet mums atpakaļ.",
				priceLine(c),
				"",
				"Ja rodas jautājumi, labprāt palīdzēsim.",
				signature(facility),
			),
		}, nil
	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownFillScenario, c.FillScenario)
	}
}

// QueueOfferEmail builds the notification that a place has become available
// for a queued lead. Position is the lead's derived FIFO position.
func QueueOfferEmail(lead domain.Lead, position int, facility string) (Message, error) {
	if lead.Consultation == nil {
		return Message{}, ErrNoConsultation
	}

	return Message{
		Subject: fmt.Sprintf(subjectQueueOfferFmt, facility),
		Body: joinLines(
			greeting(lead),
			"",
			fmt.Sprintf("Pansionātā %s ir atbrīvojusies vieta.", facility),
			fmt.Sprintf("Jūsu vieta rindā: %d.", position),
			priceLine(lead.Consultation),
			"",
			"Lūdzu, sazinieties ar mums tuvāko dienu laikā, lai apstiprinātu vai atteiktos no piedāvājuma.",
			signature(facility),
		),
	}, nil
}

func greeting(lead domain.Lead) string {
	return fmt.Sprintf("Labdien, %s %s!", lead.FirstName, lead.LastName)
}

func priceLine(c *domain.Consultation) string {
	if c.Price == nil {
		return ""
	}
	return fmt.Sprintf("Diennakts maksa: %.2f EUR (istaba: %s, aprūpes līmenis: %s).",
		*c.Price, c.RoomType, c.CareLevel)
}

func signature(facility string) string {
	return fmt.Sprintf("\nAr cieņu,\nPansionāts %s", facility)
}

func joinLines(lines ...string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
