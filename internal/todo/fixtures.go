package todo

import (
	"fmt"
	"time"

	"github.com/pdxmph/todo-tui/internal/storage"
)

// WriteFixtures overwrites backend with a small set of sample tasks whose
// due dates are relative to now.
func WriteFixtures(backend storage.Backend, now time.Time) error {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(DateLayout)
	}

	fixtures := []storage.Record{
		{Description: "Renew passport", Priority: string(PriorityHigh), DueDate: day(-3)},
		{Description: "Buy milk", Priority: string(PriorityHigh), DueDate: day(0)},
		{Description: "Book dentist appointment", Priority: string(PriorityMedium), DueDate: day(7)},
		{Description: "Clean out the garage", Priority: string(PriorityLow), DueDate: day(30)},
		{Description: "Pay electricity bill", Completed: true, Priority: string(PriorityMedium), DueDate: day(-10)},
	}

	if err := backend.Save(fixtures); err != nil {
		return fmt.Errorf("writing fixtures: %w", err)
	}
	return nil
}
