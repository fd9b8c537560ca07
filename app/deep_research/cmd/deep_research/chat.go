package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/deep_research/app/deep_research/pkg/engine"
)

func newChatCmd(c *cli) *cobra.Command {
	var persona string
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Chat with the research agent, which may call research and risk tools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePersona(persona)
			if err != nil {
				return err
			}
			eng, err := c.setup(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, eng.ChatAs(cmd.Context(), p, joinArgs(args)))
			return err
		},
	}
	cmd.Flags().StringVar(&persona, "persona", string(engine.PersonaResearch), "chat persona: research or risk")
	return cmd
}
