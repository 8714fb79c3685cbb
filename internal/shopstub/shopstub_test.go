package shopstub_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/shopstub"
)

func newStubClient(t *testing.T) (*api.Client, *shopstub.Server) {
	t.Helper()
	stub := shopstub.New()
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL), stub
}

// The whole journey: register, verify the OTP, log in, order, ask the bot
// about the order, check the profile.
func TestFullFlow(t *testing.T) {
	ctx := context.Background()
	client, stub := newStubClient(t)

	in := api.RegisterInput{Name: "Asha", Email: "asha@x.com", Password: "p", Confirm: "p"}
	otpToken, err := client.Register(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, otpToken)

	otp, ok := stub.OTPFor(otpToken)
	require.True(t, ok)
	require.Len(t, otp, 6)

	require.NoError(t, client.VerifyOTP(ctx, otp, otpToken))

	token, err := client.Login(ctx, "asha@x.com", "p")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	orderID, err := client.PlaceOrder(ctx, token, "p3", 1)
	require.NoError(t, err)
	assert.Len(t, orderID, 12)

	reply, err := client.Chat(ctx, token, orderID)
	require.NoError(t, err)
	assert.Contains(t, reply, orderID)
	assert.Contains(t, reply, "processing")

	profile, err := client.FetchProfile(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, profile.Profile)
	assert.Equal(t, "Asha", profile.Profile.Name)
	require.Len(t, profile.Orders, 1)
	assert.Equal(t, orderID, profile.Orders[0].OrderID)

	fetched, err := client.Order(ctx, token, orderID)
	require.NoError(t, err)
	assert.Equal(t, "processing", fetched.Status)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	client, _ := newStubClient(t)

	tests := []struct {
		name string
		in   api.RegisterInput
		want string
	}{
		{"missing fields", api.RegisterInput{Name: "A"}, "All fields are required"},
		{"password mismatch", api.RegisterInput{Name: "A", Email: "a@x.com", Password: "p", Confirm: "q"}, "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Register(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, api.ServerMessage(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	client, stub := newStubClient(t)

	in := api.RegisterInput{Name: "A", Email: "a@x.com", Password: "p", Confirm: "p"}
	otpToken, err := client.Register(ctx, in)
	require.NoError(t, err)
	otp, _ := stub.OTPFor(otpToken)
	require.NoError(t, client.VerifyOTP(ctx, otp, otpToken))

	_, err = client.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "Email already registered", api.ServerMessage(err))
}

func TestVerifyErrors(t *testing.T) {
	ctx := context.Background()
	client, stub := newStubClient(t)

	err := client.VerifyOTP(ctx, "123456", "no-such-token")
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", api.ServerMessage(err))

	otpToken, err := client.Register(ctx, api.RegisterInput{Name: "A", Email: "a@x.com", Password: "p", Confirm: "p"})
	require.NoError(t, err)

	err = client.VerifyOTP(ctx, "000000", otpToken)
	require.Error(t, err)
	assert.Equal(t, "Incorrect OTP", api.ServerMessage(err))

	// Age the pending entry past its TTL.
	stub.SetNow(func() time.Time { return time.Now().Add(10 * time.Minute) })
	otp, _ := stub.OTPFor(otpToken)
	err = client.VerifyOTP(ctx, otp, otpToken)
	require.Error(t, err)
	assert.Equal(t, "OTP expired", api.ServerMessage(err))

	// Expiry is destructive: the token is gone now.
	stub.SetNow(time.Now)
	err = client.VerifyOTP(ctx, otp, otpToken)
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", api.ServerMessage(err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	client, _ := newStubClient(t)

	_, err := client.Login(ctx, "ghost@x.com", "p")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", api.ServerMessage(err))
}

func TestOrderErrors(t *testing.T) {
	ctx := context.Background()
	client, stub := newStubClient(t)
	token := registerAndLogin(t, client, stub, "b@x.com")

	_, err := client.PlaceOrder(ctx, token, "p99", 1)
	require.Error(t, err)
	assert.Equal(t, "Product not found", api.ServerMessage(err))

	_, err = client.PlaceOrder(ctx, token, "p3", 100)
	require.Error(t, err)
	assert.Equal(t, "Not enough stock", api.ServerMessage(err))
}

func TestOrderRequiresBearer(t *testing.T) {
	ctx := context.Background()
	client, _ := newStubClient(t)

	_, err := client.PlaceOrder(ctx, "", "p1", 1)
	require.Error(t, err)
	assert.Equal(t, "Missing token", api.ServerMessage(err))

	_, err = client.PlaceOrder(ctx, "garbage", "p1", 1)
	require.Error(t, err)
	assert.Equal(t, "Invalid token", api.ServerMessage(err))
}

func TestChatRules(t *testing.T) {
	ctx := context.Background()
	client, stub := newStubClient(t)
	token := registerAndLogin(t, client, stub, "c@x.com")

	// Unknown order number: the bot escalates rather than guessing.
	reply, err := client.Chat(ctx, token, "12345678")
	require.NoError(t, err)
	assert.Contains(t, reply, "support team")

	// Free-text questions get the same canned escalation.
	reply, err = client.Chat(ctx, token, "how do i return these shoes?")
	require.NoError(t, err)
	assert.Contains(t, reply, "support team")

	// A real order id yields a status summary with a delivery estimate.
	orderID, err := client.PlaceOrder(ctx, token, "p1", 1)
	require.NoError(t, err)

	reply, err = client.Chat(ctx, token, orderID)
	require.NoError(t, err)
	assert.Contains(t, reply, "Estimated delivery")
}

func registerAndLogin(t *testing.T, client *api.Client, stub *shopstub.Server, email string) string {
	t.Helper()
	ctx := context.Background()

	otpToken, err := client.Register(ctx, api.RegisterInput{Name: "T", Email: email, Password: "p", Confirm: "p"})
	require.NoError(t, err)
	otp, ok := stub.OTPFor(otpToken)
	require.True(t, ok)
	require.NoError(t, client.VerifyOTP(ctx, otp, otpToken))

	token, err := client.Login(ctx, email, "p")
	require.NoError(t, err)
	return token
}
