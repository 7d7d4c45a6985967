package mail

type WelcomeEmailData struct {
	Email string
}
