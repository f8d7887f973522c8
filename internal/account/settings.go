package account

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Settings is a read-only snapshot of the account form.
type Settings struct {
	AccountName string
	Email       string
	DisplayName string
	Backend     string
	IMAP        *IMAPSettings
	Maildir     *MaildirSettings
}

type IMAPSettings struct {
	Host     string
	Protocol string
	Port     string
	Username string
	Password string
}

type MaildirSettings struct {
	Directory string
}

// Validate reports every problem with the snapshot at once.
func (s Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.AccountName) == "" {
		errs = append(errs, errors.New("account name is required"))
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		errs = append(errs, fmt.Errorf("email %q is not an address", s.Email))
	}
	if s.IMAP != nil {
		if strings.TrimSpace(s.IMAP.Host) == "" {
			errs = append(errs, errors.New("imap host is required"))
		}
		if s.IMAP.Port != "" {
			if port, err := strconv.Atoi(s.IMAP.Port); err != nil || port < 1 || port > 65535 {
				errs = append(errs, fmt.Errorf("imap port %q is not a valid port", s.IMAP.Port))
			}
		}
	}
	if s.Maildir != nil && strings.TrimSpace(s.Maildir.Directory) == "" {
		errs = append(errs, errors.New("maildir directory is required"))
	}
	return errors.Join(errs...)
}

// String hides the password.
func (s IMAPSettings) String() string {
	return fmt.Sprintf("%s (%s) port %s as %s", s.Host, s.Protocol, s.Port, s.Username)
}
