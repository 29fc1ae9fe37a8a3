package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-admaiora"
	contactcomponent "github.com/goliatone/go-admaiora/components/contact"
	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
	pkgmodel "github.com/goliatone/go-admaiora/pkg/model"
	"github.com/goliatone/go-admaiora/pkg/render"
	"github.com/goliatone/go-admaiora/pkg/renderers/tui"
)

// contactPrompter streams answers for the contact form. It is satisfied by
// *tui.Renderer.
type contactPrompter interface {
	CollectInto(ctx context.Context, form pkgmodel.FormModel, opts render.RenderOptions, sink tui.AnswerFunc) error
}

func newContactCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Fill in the contact form from the terminal and send it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompter, err := tui.New(
				tui.WithValidator(validateAnswer),
				tui.WithConfirm("Send this inquiry?"),
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			)
			if err != nil {
				return err
			}

			var channel pkgcontact.Channel
			if dryRun {
				channel = printChannel{cmd: cmd, formName: a.cfg.Contact.FormName}
			} else {
				channel, err = admaiora.NewChannel(a.cfg.Contact, a.logger)
				if err != nil {
					return err
				}
			}
			return runContact(cmd.Context(), cmd, prompter, channel, a.logger)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the payload instead of sending it")
	return cmd
}

// runContact binds every answer to a Controller as it arrives and submits
// through the same gate the HTTP handler uses.
func runContact(ctx context.Context, cmd *cobra.Command, prompter contactPrompter, channel pkgcontact.Channel, logger *zap.Logger) error {
	form, err := contactcomponent.FormModel(ctx)
	if err != nil {
		return err
	}

	// The controller logs hand-off failures; the terminal reports them too.
	var deliverErr error
	tracked := pkgcontact.ChannelFunc(func(ctx context.Context, values pkgcontact.FormValues) error {
		deliverErr = channel.Deliver(ctx, values)
		return deliverErr
	})
	ctrl := pkgcontact.NewController(tracked, pkgcontact.WithLogger(logger))
	defer ctrl.Close()

	err = prompter.CollectInto(ctx, form, render.RenderOptions{}, ctrl.SetField)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Inquiry discarded.")
		return nil
	}
	if err != nil {
		return err
	}

	errs, err := ctrl.SubmitCurrent(ctx)
	if err != nil {
		return err
	}
	if !errs.Valid() {
		return errs.Err()
	}
	if deliverErr != nil {
		return fmt.Errorf("send inquiry: %w", deliverErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), contactcomponent.DefaultSuccessMessage)
	return nil
}

// reportError prints err, listing field failures one per line.
func reportError(w io.Writer, err error) {
	fieldErrs, ok := pkgcontact.AsFieldErrors(err)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, "inquiry not sent:")
	for _, fe := range fieldErrs.List() {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
	}
}

func validateAnswer(field, value string) error {
	msg, err := pkgcontact.ValidateField(field, value)
	if err != nil {
		return err
	}
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}

// printChannel writes the payload the form endpoint would receive.
type printChannel struct {
	cmd      *cobra.Command
	formName string
}

func (p printChannel) Deliver(_ context.Context, values pkgcontact.FormValues) error {
	payload := values.URLValues()
	payload.Set(pkgcontact.FormNameField, p.formName)
	_, err := fmt.Fprintln(p.cmd.OutOrStdout(), payload.Encode())
	return err
}
