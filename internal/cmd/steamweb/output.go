package steamweb

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/spf13/cobra"
)

func writeJSON(output io.Writer, value any) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return errors.Join(err, errCommand)
	}

	return nil
}

// printResult writes the envelope. Logical errors are printed like data and then reported
// through the exit status.
func printResult[T any](cmd *cobra.Command, res webapi.Result[T], err error) error {
	if err != nil {
		return errors.Join(err, errCommand)
	}

	if errWrite := writeJSON(cmd.OutOrStdout(), res); errWrite != nil {
		return errWrite
	}

	if res.Error != nil {
		return errors.Join(res.Error, errResult)
	}

	return nil
}

// subject returns the steam id at args[idx], falling back to the configured steam_id.
func (app *cli) subject(args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}

	if app.conf.SteamID.Valid() {
		return app.conf.SteamID.String(), nil
	}

	return "", errNoSteamID
}

// subjects returns all steam id args, falling back to the configured steam_id.
func (app *cli) subjects(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	steamID, err := app.subject(args, 0)
	if err != nil {
		return nil, err
	}

	return []string{steamID}, nil
}

func parseAppID(value string) (int, error) {
	appID, errAppID := strconv.Atoi(strings.TrimSpace(value))
	if errAppID != nil {
		return 0, errors.Join(errAppID, errArgs)
	}

	return appID, nil
}

// parseParams turns key=value pairs into request params. Repeated keys become lists.
func parseParams(pairs []string) (webapi.Params, error) {
	params := webapi.Params{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Join(errArgs, errors.New("expected key=value, got "+strconv.Quote(pair)))
		}

		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}

	return params, nil
}
