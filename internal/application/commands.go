package application

type LoginCommand struct {
	Email    string
	Password string
	// Force skips the stored session and its secret.
	Force bool
	// Remember stores the password in the credential store after a
	// successful login.
	Remember bool
}

type ForgetCommand struct {
	Email string
	// Password also drops the remembered password.
	Password bool
}
