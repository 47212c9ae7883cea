package triage

import (
	"errors"
	"testing"

	"iptriage/testutils"

	"github.com/stretchr/testify/assert"
)

type mockAddressClassifier struct {
	localAddrs  map[string]bool
	calledCount int
}

func (m *mockAddressClassifier) IsLocalOrReserved(addr string) bool {
	m.calledCount++
	return m.localAddrs[addr]
}

type mockBlacklistEngine struct {
	addrs       map[string]bool
	calledCount int
}

func (m *mockBlacklistEngine) Match(addr string) bool {
	m.calledCount++
	return m.addrs[addr]
}

func (m *mockBlacklistEngine) PutBlacklist(addrs []string) {}

type mockFeatureAssembler struct {
	vector      []float64
	err         error
	calledCount int
}

func (m *mockFeatureAssembler) AssembleOne(req RawRequest) (vector []float64, err error) {
	m.calledCount++
	vector = m.vector
	err = m.err
	return
}

type mockClassifier struct {
	code        int
	calledCount int
}

func (m *mockClassifier) Predict(matrix FeatureMatrix) (codes []int) {
	m.calledCount++
	for range matrix {
		codes = append(codes, m.code)
	}
	return
}

type mockResultsLogger struct {
	shortCircuits int
	scored        int
	failed        int
}

func (m *mockResultsLogger) ShortCircuit(req RawRequest, reason string) { m.shortCircuits++ }
func (m *mockResultsLogger) Scored(req RawRequest, verdict Verdict) { m.scored++ }
func (m *mockResultsLogger) PipelineFailed(req RawRequest, err error) { m.failed++ }

type serverTestFixture struct {
	addrs     *mockAddressClassifier
	blacklist *mockBlacklistEngine
	assembler *mockFeatureAssembler
	model     *mockClassifier
	results   *mockResultsLogger
	server    Server
}

func newServerTestFixture(t *testing.T) *serverTestFixture {
	f := &serverTestFixture{
		addrs:     &mockAddressClassifier{localAddrs: map[string]bool{"127.0.0.1": true, "192.168.0.1": true}},
		blacklist: &mockBlacklistEngine{addrs: map[string]bool{"1.2.3.4": true}},
		assembler: &mockFeatureAssembler{vector: []float64{1, 2, 3, 4, 5, 6, 7}},
		model:     &mockClassifier{code: 1},
		results:   &mockResultsLogger{},
	}

	server, err := NewServer(testutils.NewTestLogger(t), f.addrs, f.blacklist, f.assembler, f.model, f.results)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	f.server = server
	return f
}

func TestLocalAddressShortCircuits(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	f := newServerTestFixture(t)
	req := RawRequest{Addr: "127.0.0.1", Timestamp: "2024-01-01 00:00:00", Locale: "en-US"}

	// Act
	verdict, err := f.server.EvalRequest(req)

	// Assert
	assert.Nil(err)
	assert.Equal(Safe, verdict.Decision)
	assert.Equal(0, verdict.Code)
	assert.True(verdict.ShortCircuited)
	assert.Zero(f.assembler.calledCount)
	assert.Zero(f.model.calledCount)
	assert.Equal(1, f.results.shortCircuits)
}

func TestBlacklistedAddressShortCircuits(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	f := newServerTestFixture(t)
	req := RawRequest{Addr: "1.2.3.4", Timestamp: "garbage", Locale: "xx-YY", ClaimedLocation: "nowhere"}

	// Act
	verdict, err := f.server.EvalRequest(req)

	// Assert
	assert.Nil(err)
	assert.Equal(Safe, verdict.Decision)
	assert.True(verdict.ShortCircuited)
	assert.Zero(f.assembler.calledCount)
	assert.Zero(f.model.calledCount)
}

func TestScoredRequest(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	f := newServerTestFixture(t)
	req := RawRequest{Addr: "8.8.8.8", Timestamp: "2024-01-01 00:00:00", Locale: "en-US", ClaimedLocation: "United States, California, Mountain View"}

	// Act
	verdict, err := f.server.EvalRequest(req)

	// Assert
	assert.Nil(err)
	assert.Equal(Verify, verdict.Decision)
	assert.Equal(1, verdict.Code)
	assert.False(verdict.ShortCircuited)
	assert.Equal(1, f.assembler.calledCount)
	assert.Equal(1, f.model.calledCount)
	assert.Equal(1, f.results.scored)
}

func TestScoringIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	f := newServerTestFixture(t)
	req := RawRequest{Addr: "8.8.8.8", Timestamp: "2024-01-01 00:00:00", Locale: "en-US"}

	// Act
	first, err1 := f.server.EvalRequest(req)
	second, err2 := f.server.EvalRequest(req)

	// Assert
	assert.Nil(err1)
	assert.Nil(err2)
	assert.Equal(first, second)
}

func TestUnknownClassCodeIsError(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	f := newServerTestFixture(t)
	f.model.code = 7
	req := RawRequest{Addr: "8.8.8.8", Timestamp: "2024-01-01 00:00:00"}

	// Act
	verdict, err := f.server.EvalRequest(req)

	// Assert
	assert.Nil(err)
	assert.Equal(Error, verdict.Decision)
	assert.Equal(7, verdict.Code)
	assert.Equal(1, f.results.failed)
}

func TestAssemblyFailureIsErrorVerdict(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	f := newServerTestFixture(t)
	f.assembler.err = ErrSchemaMismatch
	req := RawRequest{Addr: "8.8.8.8", Timestamp: "2024-01-01 00:00:00"}

	// Act
	verdict, err := f.server.EvalRequest(req)

	// Assert
	assert.True(errors.Is(err, ErrSchemaMismatch))
	assert.Equal(Error, verdict.Decision)
	assert.Zero(f.model.calledCount)
	assert.Equal(1, f.results.failed)
}

func TestDecisionFromClassCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Safe, DecisionFromClassCode(0))
	assert.Equal(Verify, DecisionFromClassCode(1))
	assert.Equal(Block, DecisionFromClassCode(2))
	assert.Equal(Error, DecisionFromClassCode(3))
	assert.Equal(Error, DecisionFromClassCode(-1))
}
