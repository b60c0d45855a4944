package resend

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/brk3/habit-tracker/internal/nudge"
	"github.com/brk3/habit-tracker/pkg/habit"
	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>You have {{len .Pending}} habit{{if ne (len .Pending) 1}}s{{end}} left for today ({{.Progress.Completed}} / {{.Progress.Total}} done):</p>
<ul>
{{range .Pending}}
  <li>{{.}}</li>
{{end}}
</ul>
`))

func renderBody(pending []string, progress habit.Progress) (string, error) {
	data := struct {
		Pending  []string
		Progress habit.Progress
	}{
		Pending:  pending,
		Progress: progress,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(pending []string, progress habit.Progress) error {
	body, err := renderBody(pending, progress)
	if err != nil {
		return err
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{r.Email},
		Subject: fmt.Sprintf("%d habits still to do", len(pending)),
		Html:    body,
	}

	_, err = client.Emails.Send(params)
	return err
}

var _ nudge.Notifier = (*ResendNotifier)(nil)
