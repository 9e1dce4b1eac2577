package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// produceResult is the JSON form of one produced toy.
type produceResult struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Rule  string `json:"rule"`
	Age   int    `json:"age"`
	Sound string `json:"sound,omitempty"`
}

func newProduceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "produce AGE...",
		Short: "Produce a toy for each age and play it",
		Long: "Produce a toy for each age using the catalog and play it.\n" +
			"Ages no rule covers get the catalog default. Pass negative ages after --,\n" +
			"for example: toybox produce -- -1",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProduce(cmd, args)
		},
	}
}

func (a *app) runProduce(cmd *cobra.Command, args []string) error {
	ages := make([]int, len(args))
	for i, arg := range args {
		age, err := strconv.Atoi(arg)
		if err != nil {
			return userError("invalid age %q: must be an integer", arg)
		}
		ages[i] = age
	}

	factory, err := a.toyFactory()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for _, age := range ages {
		toy, rule := factory.ProduceWithRule(age)
		a.logger.Info("toy produced",
			zap.Int("age", age),
			zap.String("rule", rule),
			zap.String("kind", string(toy.Kind())),
			zap.String("id", toy.ID()))

		if a.flags.jsonMode {
			var sound soundBuffer
			if err := toy.Play(&sound); err != nil {
				return sysError("play toy: %w", err)
			}
			res := produceResult{ID: toy.ID(), Kind: string(toy.Kind()), Rule: rule, Age: age, Sound: sound.String()}
			if err := enc.Encode(res); err != nil {
				return sysError("encode result: %w", err)
			}
			continue
		}

		fmt.Fprintf(out, "%d\t%s\t", age, toy.Kind())
		if err := toy.Play(out); err != nil {
			return sysError("play toy: %w", err)
		}
	}
	return nil
}
