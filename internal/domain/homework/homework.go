// internal/domain/homework/homework.go

// Package homework holds the domain model of the Practicum homework API:
// the record shape, the status vocabulary and the validation boundary
// between the external API and the poll loop.
package homework

import (
	"context"
	"encoding/json"
	"fmt"
)

// Homework is a single submission record as returned by the API. Only the
// two fields the notifier needs are modeled; everything else in the record
// is ignored.
type Homework struct {
	Name   string `json:"homework_name"`
	Status string `json:"status"`
}

// Review status codes recognized by the API.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps every recognized review status to its human-readable
// verdict sentence. Immutable, defined once for the whole process.
var Verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Client fetches raw status responses from the homework API. The poll loop
// depends on this interface so the HTTP transport can be swapped in tests,
// the same way the Telegram client is abstracted.
type Client interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (json.RawMessage, error)
}

// ParseStatus builds the notification text for a single homework record.
// Pure function: the record must carry a name and a recognized status,
// otherwise a validation error is returned.
func ParseStatus(hw Homework) (string, error) {
	if hw.Name == "" {
		return "", MissingFieldError("homework_name")
	}
	if hw.Status == "" {
		return "", MissingFieldError("status")
	}
	verdict, ok := Verdicts[hw.Status]
	if !ok {
		return "", &UnknownStatusError{Status: hw.Status}
	}
	return fmt.Sprintf("Status changed for submission %q. %s", hw.Name, verdict), nil
}
