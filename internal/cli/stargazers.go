package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitego/pkg/errors"
	"github.com/matzehuels/gitego/pkg/github"
)

type stargazersOptions struct {
	recent bool
	limit  int
	repo   string
}

func (c *CLI) stargazersCommand() *cobra.Command {
	var opts stargazersOptions

	cmd := &cobra.Command{
		Use:   "stargazers <login>",
		Short: "List who starred a user's repositories",
		Long: `List who starred a user's repositories, newest first.

By default stargazers are grouped by repository, most starred repository
first. --recent lists the latest stars across all repositories instead, and
--repo shows a single repository with its last commit.`,
		Example: `  gitego stargazers octocat
  gitego stargazers octocat --recent --limit 10
  gitego stargazers octocat --repo hello-world`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.recent && opts.repo != "" {
				return errors.New(errors.ErrCodeInvalidInput, "--recent and --repo are mutually exclusive")
			}
			if opts.limit < 1 || opts.limit > github.LastStargazersLimit {
				return errors.New(errors.ErrCodeInvalidInput, "--limit must be between 1 and %d", github.LastStargazersLimit)
			}

			ctx := cmd.Context()
			client, cc, err := c.newClient(ctx, true)
			if err != nil {
				return err
			}
			defer cc.Close()

			login := args[0]
			prog := newProgress(loggerFromContext(ctx))
			spin := newSpinner(ctx, c.status, "Fetching stargazers of "+login).start()
			payload, err := client.FetchStargazers(ctx, login)
			spin.stop()
			if err != nil {
				return err
			}
			prog.done("Fetched stargazers", "login", login, "bytes", len(payload))

			switch {
			case opts.repo != "":
				if err := github.ValidateRepo(opts.repo); err != nil {
					return err
				}
				repo, found := github.RepositoryDetail(payload, login, opts.repo)
				if !found {
					return errors.New(errors.ErrCodeNotFound, "%s has no repository named %q", login, opts.repo)
				}
				c.printRepository(login, repo)
			case opts.recent:
				c.printRecent(github.LastStargazers(payload, login, opts.limit))
			default:
				c.printGroups(github.GroupByRepository(payload, login))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.recent, "recent", false, "list the most recent stargazers across all repositories")
	cmd.Flags().IntVar(&opts.limit, "limit", github.LastStargazersLimit, "maximum stargazers for --recent")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "show a single repository")
	return cmd
}

func (c *CLI) printGroups(groups github.StargazerGroups) {
	if len(groups) == 0 {
		printInfo(c.out, "No stargazers yet")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(c.out)
		}
		printTitle(c.out, fmt.Sprintf("%s %s (%d)", iconStar, g.Name, len(g.Stargazers)))
		if len(g.Stargazers) == 0 {
			printDetail(c.out, "Only starred by its owner")
			continue
		}
		printTable(c.out, []string{"Stargazer", "Name", "Starred"}, stargazerRows(g.Stargazers, false))
	}
}

func (c *CLI) printRecent(stargazers []github.Stargazer) {
	if len(stargazers) == 0 {
		printInfo(c.out, "No stargazers yet")
		return
	}
	printTitle(c.out, fmt.Sprintf("Last %d stargazers", len(stargazers)))
	printTable(c.out, []string{"Stargazer", "Name", "Starred", "Repository"}, stargazerRows(stargazers, true))
}

func (c *CLI) printRepository(login string, r github.Repository) {
	printTitle(c.out, login+"/"+r.Name)
	if r.Description != "" {
		printDetail(c.out, "%s", r.Description)
	}
	printKeyValue(c.out, "URL", styleLink.Render(r.URL))
	printCount(c.out, "Stars", r.StargazerCount)
	if r.LastCommitDate != nil {
		printKeyValue(c.out, "Last commit", formatDate(*r.LastCommitDate))
		printKeyValue(c.out, "Commit", styleLink.Render(r.LastCommitURL))
	}
	fmt.Fprintln(c.out)
	if len(r.Stargazers) == 0 {
		printWarning(c.out, "No stargazers besides %s", login)
		return
	}
	printTable(c.out, []string{"Stargazer", "Name", "Starred"}, stargazerRows(r.Stargazers, false))
}

func stargazerRows(stargazers []github.Stargazer, withRepo bool) [][]string {
	rows := make([][]string, len(stargazers))
	for i, s := range stargazers {
		row := []string{s.Login, orDash(s.Name), formatDate(s.StarredAt)}
		if withRepo {
			row = append(row, s.RepoName)
		}
		rows[i] = row
	}
	return rows
}
