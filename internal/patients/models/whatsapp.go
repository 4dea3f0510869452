package models

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds the reminder deep link for a patient. The message is
// percent-encoded into the wa.me text parameter; the link is handed to the
// frontend, never sent from here.
func WhatsAppLink(name, procedure, phone string) string {
	msg := fmt.Sprintf("Dear %s, this is a reminder for your %s treatment. Please contact us.", name, procedure)
	encoded := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + encoded
}
