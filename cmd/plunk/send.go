package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/plunk"
	"github.com/dmitrymomot/plunk/pkg/attachment"
	"github.com/dmitrymomot/plunk/pkg/logger"
)

type sendFlags struct {
	file    string
	attach  []string
	inline  []string
	vars    []string
	headers []string
	msg     message
}

func sendCmd() *cobra.Command {
	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one email",
		Long: `Send one email built from a YAML message file, flags, or both.
Flags override scalar values from the file and add to its lists.`,
		Example: `  plunk send --to user@example.com --subject Hi --body welcome.md
  plunk send -f invoice.yaml --attach s3://invoices/2024/03.pdf
  plunk send --to user@example.com --template 2f45b0aa-bbed-432f-95e4-e145e1965ba2 --var user_name="John Doe"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, &f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "YAML message file")
	fl.StringVar(&f.msg.From, "from", "", "sender address (default $MAILER_FROM)")
	fl.StringArrayVar(&f.msg.To, "to", nil, "recipient address, repeatable")
	fl.StringArrayVar(&f.msg.Cc, "cc", nil, "cc address, repeatable")
	fl.StringArrayVar(&f.msg.Bcc, "bcc", nil, "bcc address, repeatable")
	fl.StringVar(&f.msg.ReplyTo, "reply-to", "", "reply-to address")
	fl.StringVar(&f.msg.Subject, "subject", "", "subject line")
	fl.StringVar(&f.msg.Text, "text", "", "plain text body")
	fl.StringVar(&f.msg.HTML, "html", "", "HTML body")
	fl.StringVar(&f.msg.Body, "body", "", "body file; .md is rendered to HTML and text")
	fl.StringVar(&f.msg.Category, "category", "", "message category")
	fl.StringVar(&f.msg.Template, "template", "", "template UUID")
	fl.StringArrayVar(&f.attach, "attach", nil, "attachment path, file:// or s3:// URL, repeatable")
	fl.StringArrayVar(&f.inline, "inline", nil, "inline attachment as cid=source, repeatable")
	fl.StringArrayVar(&f.vars, "var", nil, "template variable as key=value, repeatable")
	fl.StringArrayVar(&f.headers, "header", nil, "custom header as key=value, repeatable")

	return cmd
}

func runSend(cmd *cobra.Command, f *sendFlags) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	log, flush := logger.NewWithSentry(os.Stderr, cfg.Log, cfg.Sentry, plunk.SendIDExtractor)
	defer flush(2 * time.Second)

	msg, err := f.message()
	if err != nil {
		return err
	}
	if err := msg.loadBody(); err != nil {
		return err
	}

	resolver := attachment.NewResolver(cfg.Attachments.MaxSize)
	if cfg.Attachments.Enabled() {
		s3Loader, err := attachment.NewS3Loader(cfg.Attachments)
		if err != nil {
			return err
		}
		resolver.Register("s3", s3Loader)
	}

	ctx := cmd.Context()
	payload, err := msg.payload(ctx, resolver, cfg.Mailer)
	if err != nil {
		return err
	}

	client, err := plunk.New(cfg.Plunk, plunk.WithLogger(log), plunk.WithUserAgent("plunk-cli/"+version))
	if err != nil {
		return err
	}

	res, err := client.Send(ctx, payload)
	if err != nil {
		log.ErrorContext(ctx, "send failed", slog.String("error", err.Error()))
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// message combines the message file with the flag values.
func (f *sendFlags) message() (message, error) {
	var msg message
	if f.file != "" {
		var err error
		if msg, err = readMessageFile(f.file); err != nil {
			return msg, err
		}
	}

	over := f.msg
	for _, ref := range f.attach {
		over.Attachments = append(over.Attachments, attachment.Source{Ref: ref})
	}
	inline, err := parseInline(f.inline)
	if err != nil {
		return msg, err
	}
	over.Attachments = append(over.Attachments, inline...)

	if over.Variables, err = parsePairs("var", f.vars); err != nil {
		return msg, err
	}
	if over.Headers, err = parsePairs("header", f.headers); err != nil {
		return msg, err
	}

	msg.merge(over)
	if msg.Template == "" && len(msg.Variables) > 0 {
		return msg, errors.New("--var requires --template")
	}
	return msg, nil
}
