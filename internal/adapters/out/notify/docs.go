// Package notify implements ports.Notifier. SMTPNotifier sends HTML email;
// LogNotifier stands in when no mail server is configured.
package notify
