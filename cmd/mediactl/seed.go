package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/internal/seed"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users, posts and interactions",
		Long: `Fill the database with fake data.

Every seeded account uses the password "` + seed.DefaultPassword + `".

Examples:
  mediactl seed                       # 20 users, 100 posts
  mediactl seed --users 5 --posts 10  # a small data set
  mediactl seed --seed 42 --json      # reproducible run, JSON summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, _ := cmd.Flags().GetInt("users")
			posts, _ := cmd.Flags().GetInt("posts")
			seedValue, _ := cmd.Flags().GetInt64("seed")
			asJSON, _ := cmd.Flags().GetBool("json")

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := repositories.AutoMigrate(db.Postgres); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			sum, err := seed.Run(cmd.Context(), db.Postgres, seed.Options{Users: users, Posts: posts, Seed: seedValue})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(sum)
			}
			fmt.Fprintf(out, "users: %d\nposts: %d\nfollows: %d\nlikes: %d\ncomments: %d\n",
				sum.Users, sum.Posts, sum.Follows, sum.Likes, sum.Comments)
			return nil
		},
	}

	cmd.Flags().Int("users", 20, "number of users to create")
	cmd.Flags().Int("posts", 100, "number of posts to create")
	cmd.Flags().Int64("seed", 0, "random seed (0 picks one)")
	cmd.Flags().Bool("json", false, "print the summary as JSON")
	return cmd
}
