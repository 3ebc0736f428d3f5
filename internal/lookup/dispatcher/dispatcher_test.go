package dispatcher

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"ninlookup/internal/lookup/metrics"
	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
	"ninlookup/internal/lookup/providers/mock"
)

// stubProvider records calls and answers with a fixed result.
type stubProvider struct {
	name   string
	result providers.Result
	calls  []models.Input
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Lookup(_ context.Context, input models.Input) providers.Result {
	s.calls = append(s.calls, input)
	return s.result
}

type DispatcherSuite struct {
	suite.Suite
	registry *providers.Registry
	stubs    map[string]*stubProvider
	logger   *slog.Logger
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.registry = providers.NewRegistry()
	s.stubs = map[string]*stubProvider{}
	for _, name := range []string{
		providers.NameMock,
		providers.NameVerifyMe,
		providers.NameMetaMap,
		providers.NameSeamfix,
		providers.NameMono,
	} {
		stub := &stubProvider{name: name, result: providers.Success(map[string]any{"from": name})}
		s.stubs[name] = stub
		s.Require().NoError(s.registry.Register(stub))
	}
}

func (s *DispatcherSuite) TestRoutesToEachConfiguredProvider() {
	for name, stub := range s.stubs {
		d, err := New(s.registry, name, s.logger)
		s.Require().NoError(err)
		s.Equal(name, d.Provider())

		res := d.Lookup(context.Background(), models.Input{Method: models.MethodNIN})
		s.Equal(name, res.Data()["from"])
		s.Len(stub.calls, 1, name)
	}
}

func (s *DispatcherSuite) TestNameIsNormalized() {
	d, err := New(s.registry, "  MetaMap ", s.logger)
	s.Require().NoError(err)
	s.Equal(providers.NameMetaMap, d.Provider())
}

func (s *DispatcherSuite) TestUnknownOrEmptyNameFallsBackToMock() {
	for _, name := range []string{"", "bogus", "smile-id"} {
		d, err := New(s.registry, name, s.logger)
		s.Require().NoError(err)
		s.Equal(providers.NameMock, d.Provider(), "configured %q", name)
	}
}

func (s *DispatcherSuite) TestMissingFallbackIsAnError() {
	_, err := New(providers.NewRegistry(), "bogus", s.logger)
	s.Error(err)
}

func (s *DispatcherSuite) TestResultPassesThroughUnmodified() {
	failure := providers.LogicFailure(providers.NameMono, "Invalid phone number")
	s.stubs[providers.NameMono].result = failure

	d, err := New(s.registry, providers.NameMono, s.logger)
	s.Require().NoError(err)

	input := models.Input{Method: models.MethodPhone, Payload: models.Payload{models.FieldPhone: "1"}}
	res := d.Lookup(context.Background(), input)

	s.Equal(failure, res)
	s.Equal([]models.Input{input}, s.stubs[providers.NameMono].calls)
}

func (s *DispatcherSuite) TestRecordsMetrics() {
	m := metrics.New(prometheus.NewRegistry())
	s.stubs[providers.NameSeamfix].result = providers.LogicFailure(providers.NameSeamfix, "Email is required for Seamfix flow")

	d, err := New(s.registry, providers.NameSeamfix, s.logger, WithMetrics(m))
	s.Require().NoError(err)
	d.Lookup(context.Background(), models.Input{Method: models.MethodEmail})

	s.Equal(1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("seamfix", "email", "failed")))
	s.Equal(1.0, testutil.ToFloat64(m.LookupFailuresTotal.WithLabelValues("seamfix", "logic")))
}

func TestDefaultMockEndToEnd(t *testing.T) {
	registry := providers.NewRegistry()
	require.NoError(t, registry.Register(mock.New()))

	d, err := New(registry, "", nil)
	require.NoError(t, err)

	res := d.Lookup(context.Background(), models.Input{
		Method:  models.MethodNIN,
		Payload: models.Payload{models.FieldNIN: mock.IPENIN},
	})
	require.True(t, res.OK())
	assert.Equal(t, models.StatusIPE, res.Status())
}
