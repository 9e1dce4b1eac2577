package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// networkResult is the JSON form of the network command output.
type networkResult struct {
	BaseURL   string            `json:"base_url"`
	Endpoints map[string]string `json:"endpoints,omitempty"`
}

func newNetworkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "network [PATH...]",
		Short: "Show the shared network manager's base URL or resolve paths against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNetwork(cmd, args)
		},
	}
}

func (a *app) runNetwork(cmd *cobra.Command, args []string) error {
	m, err := a.networkManager()
	if err != nil {
		return err
	}

	res := networkResult{BaseURL: m.String()}
	resolved := make([]string, len(args))
	for i, p := range args {
		u, err := m.Endpoint(p)
		if err != nil {
			return userError("%w", err)
		}
		resolved[i] = u.String()
	}

	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		if len(args) > 0 {
			res.Endpoints = make(map[string]string, len(args))
			for i, p := range args {
				res.Endpoints[p] = resolved[i]
			}
		}
		if err := json.NewEncoder(out).Encode(res); err != nil {
			return sysError("encode result: %w", err)
		}
		return nil
	}

	if len(args) == 0 {
		fmt.Fprintln(out, res.BaseURL)
		return nil
	}
	for _, u := range resolved {
		fmt.Fprintln(out, u)
	}
	return nil
}
