// Package notify sends account emails: verification links and password recovery links.
package notify

import (
	"fmt"
	"strings"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

type message struct {
	subject string
	body    string
}

func verificationMessage(siteURL string, user *domain.User, secret string) message {
	link := fmt.Sprintf("%s/api/users/verify/%s", strings.TrimRight(siteURL, "/"), secret)
	return message{
		subject: "Confirm your shoptrack account",
		body: fmt.Sprintf("Hello %s,\n\nOpen the link below to activate your account:\n%s\n",
			displayName(user), link),
	}
}

func recoveryMessage(siteURL string, user *domain.User, secret string) message {
	link := fmt.Sprintf("%s/api/users/password/reset/%s", strings.TrimRight(siteURL, "/"), secret)
	return message{
		subject: "Reset your shoptrack password",
		body: fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password:\n%s\n"+
			"If you did not ask for it, ignore this email.\n", displayName(user), link),
	}
}

func displayName(user *domain.User) string {
	if user.Name == "" {
		return user.Email
	}
	return strings.TrimSpace(user.Name + " " + user.LastName)
}
