package steamweb

import (
	"errors"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/spf13/cobra"
)

func (app *cli) rawCmd() *cobra.Command {
	var post bool

	cmd := &cobra.Command{
		Use:   "raw <interface/method/version> [key=value...]",
		Short: "Send a request to any api method and print the raw response",
		Long: `Send a request to any api method and print the raw response.

The api key and format parameters are added automatically. Repeated keys are sent as a list,
eg. steamids=1 steamids=2 becomes steamids[0]=1&steamids[1]=2.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, errParams := parseParams(args[1:])
			if errParams != nil {
				return errParams
			}

			var (
				raw    webapi.RawResponse
				errRaw error
			)

			if post {
				raw, errRaw = app.client.Post(cmd.Context(), args[0], params)
			} else {
				raw, errRaw = app.client.Request(cmd.Context(), args[0], params)
			}

			if errRaw != nil {
				return errors.Join(errRaw, errCommand)
			}

			return writeJSON(cmd.OutOrStdout(), raw)
		},
	}
	cmd.Flags().BoolVar(&post, "post", false, "Send the parameters as a form post")

	return cmd
}
