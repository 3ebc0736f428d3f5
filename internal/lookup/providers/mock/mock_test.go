package mock

import (
	"testing"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
	"ninlookup/internal/lookup/providers/providertest"

	"github.com/stretchr/testify/assert"
)

func TestContract(t *testing.T) {
	providertest.ContractSuite{
		Provider:     New(),
		ExpectedName: providers.NameMock,
		Cases: []providertest.Case{
			{
				Name:       "all-zero nin is an in-progress enquiry",
				Input:      models.Input{Method: models.MethodNIN, Payload: models.Payload{models.FieldNIN: IPENIN}},
				WantOK:     true,
				WantStatus: models.StatusIPE,
			},
			{
				Name:       "any other nin matches",
				Input:      models.Input{Method: models.MethodNIN, Payload: models.Payload{models.FieldNIN: "12345678901"}},
				WantOK:     true,
				WantStatus: models.StatusMatched,
				Check: func(t *testing.T, res providers.Result) {
					assert.Equal(t, "12345678901", res.Data()["nin"])
					assert.Equal(t, "nin", res.Data()["method"])
				},
			},
			{
				Name:       "methods without a nin still match",
				Input:      models.Input{Method: models.MethodPhone, Payload: models.Payload{models.FieldPhone: "0803"}},
				WantOK:     true,
				WantStatus: models.StatusMatched,
			},
			{
				Name:       "empty payload",
				Input:      models.Input{Method: models.MethodDemography},
				WantOK:     true,
				WantStatus: models.StatusMatched,
			},
		},
	}.Run(t)
}
