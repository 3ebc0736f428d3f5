package providers

import "ninlookup/internal/lookup/models"

// CannedPerson is the fixture identity the simulated adapters answer with. Identifiers
// supplied in the payload replace the canned ones so responses echo what was asked for.
func CannedPerson(p models.Payload) map[string]any {
	person := map[string]any{
		"firstName":  "Adaeze",
		"middleName": "Chioma",
		"lastName":   "Okafor",
		"gender":     "F",
		"dob":        "1990-04-12",
		"phone":      "08031234567",
		"email":      "adaeze.okafor@example.com",
		"state":      "Lagos",
		"lga":        "Ikeja",
	}
	for _, key := range []string{
		models.FieldNIN,
		models.FieldPhone,
		models.FieldEmail,
		models.FieldTrackingID,
		models.FieldFirstName,
		models.FieldLastName,
		models.FieldDOB,
	} {
		if v := p.Get(key); v != "" {
			person[key] = v
		}
	}
	return person
}
