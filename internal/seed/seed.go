package seed

import (
	"context"
	"log"

	"pulse-backend/internal/models"
)

type templateStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, template *models.QuestionTemplate) error
}

// DefaultTemplates returns the starter question sets admins can copy
// into new feedback periods. Only a convenience — admins edit or
// delete them freely, and existing periods never change with them.
func DefaultTemplates() []models.QuestionTemplate {
	return []models.QuestionTemplate{
		{
			Department: models.DeptIT,
			Questions: []string{
				"How satisfied are you with the IT support response time?",
				"How would you rate the quality of IT services provided?",
				"How effective is the IT department in resolving technical issues?",
				"How well does the IT department communicate about system updates and maintenance?",
				"How would you rate the IT department's knowledge and expertise?",
			},
		},
		{
			Department: models.DeptHR,
			Questions: []string{
				"How satisfied are you with the HR department's response to your queries?",
				"How would you rate the effectiveness of HR policies and procedures?",
				"How well does the HR department handle employee concerns?",
				"How would you rate the HR department's communication and transparency?",
				"How satisfied are you with the employee benefits and welfare programs?",
			},
		},
		{
			Department: models.DeptAccounts,
			Questions: []string{
				"How satisfied are you with the Accounts department's response time?",
				"How would you rate the accuracy of financial reports and statements?",
				"How well does the Accounts department handle expense reimbursements?",
				"How would you rate the clarity of financial communications?",
				"How satisfied are you with the budget management process?",
			},
		},
		{
			Department: models.DeptProduction,
			Questions: []string{
				"How satisfied are you with the Production department's efficiency?",
				"How would you rate the quality of production processes?",
				"How well does the Production department handle day-to-day activities?",
				"How would you rate the coordination between Production and other departments?",
				"How satisfied are you with the resource allocation and management?",
			},
		},
		{
			Department: models.DeptSafety,
			Questions: []string{
				"How satisfied are you with the Safety department's responsiveness to hazards?",
				"How would you rate the clarity of safety procedures and training?",
				"How well does the Safety department communicate incident learnings?",
				"How would you rate the Safety department's plant walkdown coverage?",
				"How satisfied are you with the permit-to-work process?",
			},
		},
	}
}

// EnsureDefaultTemplates inserts the starter templates once, when the
// collection is still empty. Re-running is a no-op.
func EnsureDefaultTemplates(ctx context.Context, store templateStore) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	templates := DefaultTemplates()
	for i := range templates {
		if err := store.Create(ctx, &templates[i]); err != nil {
			return err
		}
	}
	log.Printf("🌱 Seeded %d default question templates", len(templates))
	return nil
}
