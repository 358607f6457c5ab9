package notify

import (
	"fmt"
	"strconv"
	"strings"

	"flowershop/internal/model"
)

// Subject is the email subject for a new submission.
func Subject(s model.Submission) string {
	catalog := s.CatalogID
	if catalog == "" {
		catalog = "未指定"
	}
	return fmt.Sprintf("【新規申込み】%s 様 / %s", s.ApplicantName, catalog)
}

// Text renders the submission as the plain-text block the shop reads.
func Text(s model.Submission) string {
	var b strings.Builder

	line := func(label, value string) {
		fmt.Fprintf(&b, "■%s: %s\n", label, value)
	}

	line("お名前", s.ApplicantName)
	line("電話", s.ApplicantPhone)
	if s.ApplicantEmail != "" {
		line("メール", s.ApplicantEmail)
	}
	if s.ApplicantAddress != "" {
		line("ご住所", s.ApplicantAddress)
	}

	catalog := s.CatalogID
	if s.CatalogName != "" {
		catalog += " (" + s.CatalogName + ")"
	}
	line("カタログ番号", catalog)
	line("数量", quantity(s.Quantity))
	line("希望連絡時間", s.PreferredTime)

	if s.Kind == model.KindOrder {
		line("お届け先", s.RecipientName)
		line("お届け先住所", s.RecipientAddress)
		if s.RecipientPhone != "" {
			line("お届け先電話", s.RecipientPhone)
		}
	}

	b.WriteString("■メモ:\n")
	b.WriteString(s.Message)
	b.WriteString("\n")

	return b.String()
}

// TemplateParams flattens the submission into template variables.
func TemplateParams(s model.Submission) map[string]string {
	return map[string]string{
		"kind":              string(s.Kind),
		"applicant_name":    s.ApplicantName,
		"applicant_address": s.ApplicantAddress,
		"applicant_phone":   s.ApplicantPhone,
		"applicant_email":   s.ApplicantEmail,
		"catalog_id":        s.CatalogID,
		"catalog_name":      s.CatalogName,
		"quantity":          quantity(s.Quantity),
		"preferred_time":    s.PreferredTime,
		"message":           s.Message,
		"recipient_name":    s.RecipientName,
		"recipient_address": s.RecipientAddress,
		"recipient_phone":   s.RecipientPhone,
	}
}

func quantity(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
