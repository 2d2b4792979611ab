package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/layer-3/aio/adapters/crypto"
	"github.com/layer-3/aio/adapters/tokenizer"
	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSecret = []byte("gate-test-secret")
	testAESKey = []byte("0123456789abcdef")
	testNow    = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
)

const testTime = "20230101120000"

type stubRealm struct {
	err   error
	calls int
}

func (r *stubRealm) Login(ctx context.Context, token string) (*core.Identity, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &core.Identity{Subject: "alice", Username: "alice", TokenID: "jti"}, nil
}

type gateFixture struct {
	gate      *Gate
	realm     *stubRealm
	tokenizer ports.Tokenizer
	cipher    *crypto.AESCipher
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	c, err := crypto.NewAESCipher(testAESKey)
	require.NoError(t, err)

	tk := tokenizer.NewJWTTokenizer(testSecret)
	realm := &stubRealm{}
	gate := NewGate(tk, NewReplayGuard(c), realm, WithClock(func() time.Time { return testNow }))

	return &gateFixture{gate: gate, realm: realm, tokenizer: tk, cipher: c}
}

func (f *gateFixture) token(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := f.tokenizer.Issue("alice", expiresAt)
	require.NoError(t, err)
	return token
}

func (f *gateFixture) creds(token string) core.Credentials {
	return core.Credentials{
		Authorization: token,
		Time:          testTime,
		Key:           f.cipher.Encrypt(testTime),
	}
}

func TestGateAuthenticates(t *testing.T) {
	f := newGateFixture(t)

	id, err := f.gate.Authenticate(context.Background(), f.creds(f.token(t, testNow.Add(60*time.Second))))
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Subject)
	assert.Equal(t, 1, f.realm.calls)
}

func TestGateExpiryBoundaryIsInclusive(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Authenticate(context.Background(), f.creds(f.token(t, testNow)))
	assert.NoError(t, err)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	f := newGateFixture(t)
	token := f.token(t, testNow)

	// One millisecond after expiry
	f.gate.now = func() time.Time { return testNow.Add(time.Millisecond) }

	_, err := f.gate.Authenticate(context.Background(), f.creds(token))
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.Zero(t, f.realm.calls, "realm must not be consulted for an expired token")
}

func TestGateRejectsMissingAuthorization(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Authenticate(context.Background(), f.creds(""))
	assert.ErrorIs(t, err, core.ErrMissingCredentials)
	assert.Zero(t, f.realm.calls)
}

func TestGateRejectsMalformedToken(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Authenticate(context.Background(), f.creds("definitely.not.a-token"))
	assert.ErrorIs(t, err, core.ErrMalformedToken)
	assert.Zero(t, f.realm.calls)
}

func TestGateRejectsBadReplayPair(t *testing.T) {
	f := newGateFixture(t)
	valid := f.token(t, testNow.Add(time.Minute))
	expired := f.token(t, testNow.Add(-time.Minute))

	cases := map[string]func(c *core.Credentials){
		"missing time": func(c *core.Credentials) { c.Time = "" },
		"missing key":  func(c *core.Credentials) { c.Key = "" },
		"wrong value":  func(c *core.Credentials) { c.Key = f.cipher.Encrypt("wrong-value") },
		"garbage key":  func(c *core.Credentials) { c.Key = "!!not-base64!!" },
		"plain key":    func(c *core.Credentials) { c.Key = testTime },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			for _, token := range []string{valid, expired} {
				creds := f.creds(token)
				mutate(&creds)
				_, err := f.gate.Authenticate(context.Background(), creds)
				assert.ErrorIs(t, err, core.ErrReplayValidationFailed)
			}
		})
	}
	assert.Zero(t, f.realm.calls)
}

func TestGateMalformedTokenReportedBeforeReplay(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Authenticate(context.Background(), core.Credentials{Authorization: "bad"})
	assert.ErrorIs(t, err, core.ErrMalformedToken)
	assert.NotErrorIs(t, err, core.ErrReplayValidationFailed)
}

func TestGateRealmRejection(t *testing.T) {
	f := newGateFixture(t)
	cause := errors.New("account disabled")
	f.realm.err = cause

	_, err := f.gate.Authenticate(context.Background(), f.creds(f.token(t, testNow.Add(time.Minute))))
	assert.ErrorIs(t, err, core.ErrRealmRejected)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "realm_rejected", core.Reason(err))
}

func TestReplayGuardIsValid(t *testing.T) {
	c, err := crypto.NewAESCipher(testAESKey)
	require.NoError(t, err)
	g := NewReplayGuard(c)

	assert.True(t, g.IsValid(testTime, c.Encrypt(testTime)))
	assert.False(t, g.IsValid(testTime, c.Encrypt(testTime+" ")))
	assert.False(t, g.IsValid("", c.Encrypt("")))
	assert.False(t, g.IsValid(testTime, ""))
}
