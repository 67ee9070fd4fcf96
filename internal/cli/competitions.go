package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "List competitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		comps, err := a.ctf.Competitions(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tACTIVE\tPERIOD")
		for _, c := range comps {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s a %s\n", c.Code, c.Name, c.IsActive, c.StartDate, c.EndDate)
		}
		return w.Flush()
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <code>",
	Short: "Join a competition by access code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		userID, err := a.requireUser(cmd.Context())
		if err != nil {
			return err
		}

		comp, err := a.ctf.Join(cmd.Context(), userID, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inscrito em %s\n", comp.Name)
		return nil
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave <competition-id>",
	Short: "Leave a competition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		userID, err := a.requireUser(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.ctf.Leave(cmd.Context(), userID, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Inscrição removida")
		return nil
	},
}

var challengesCmd = &cobra.Command{
	Use:   "challenges <competition-id>",
	Short: "List the challenges of a competition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		challenges, err := a.ctf.ChallengesByCompetition(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		score, err := a.ctf.Score(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPOINTS\tSOLVED")
		for _, ch := range challenges {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%t\n", ch.ID, ch.Name, ch.Category, ch.Points, ch.Solved)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPontuação: %d\n", score)
		return nil
	},
}

var solveUnsolved bool

var solveCmd = &cobra.Command{
	Use:   "solve <challenge-id>",
	Short: "Mark a challenge as solved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("challenge id must be a number: %q", args[0])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		if err := a.ctf.SetSolved(cmd.Context(), id, !solveUnsolved); err != nil {
			return err
		}
		if solveUnsolved {
			fmt.Fprintf(cmd.OutOrStdout(), "Desafio %d desmarcado\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Desafio %d resolvido\n", id)
		}
		return nil
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking <competition-id>",
	Short: "Show the scoreboard of a competition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		entries, err := a.ctf.RankingByCompetition(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma pontuação registrada")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tTEAM\tSCORE")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%d\n", e.Position, e.Team, e.Score)
		}
		return w.Flush()
	},
}

func init() {
	solveCmd.Flags().BoolVar(&solveUnsolved, "unsolved", false, "mark as unsolved instead")
	rootCmd.AddCommand(competitionsCmd, joinCmd, leaveCmd, challengesCmd, solveCmd, rankingCmd)
}
