package domain

// Login status codes reported in the api:statuscode field of a 400 answer.
const (
	LoginStatusInvalidCredentials = 200
	LoginStatusCaptcha            = 270
)

// ClientType is the client type announced for login and device registration.
const ClientType = 100
