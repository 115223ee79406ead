package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitego/pkg/github"
)

func (c *CLI) userCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "user <login>",
		Short: "Print a GitHub user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, cc, err := c.newClient(ctx, true)
			if err != nil {
				return err
			}
			defer cc.Close()

			prog := newProgress(loggerFromContext(ctx))
			spin := newSpinner(ctx, c.status, "Fetching "+args[0]).start()
			user, err := client.FetchUser(ctx, args[0])
			spin.stop()
			if err != nil {
				return err
			}
			prog.done("Fetched profile", "login", user.Login)

			c.printUser(user)
			return nil
		},
	}
}

func (c *CLI) printUser(u github.User) {
	printTitle(c.out, u.Login)
	printKeyValue(c.out, "Profile", styleLink.Render("https://github.com/"+u.Login))
	if u.WebsiteURL != "" {
		printKeyValue(c.out, "Website", styleLink.Render(u.WebsiteURL))
	}
	printCount(c.out, "Repositories", u.Counts.Repositories)
	printCount(c.out, "Starred", u.Counts.StarredRepositories)
	printCount(c.out, "Following", u.Counts.Following)
	printCount(c.out, "Sponsoring", u.Counts.Sponsoring)

	if u.HasSponsorsListing {
		c.printAccounts("Sponsors", u.Sponsors)
	}
	c.printAccounts("Followers", u.Followers)
}

func (c *CLI) printAccounts(title string, accounts []github.Account) {
	fmt.Fprintln(c.out)
	if len(accounts) == 0 {
		printInfo(c.out, "No %s", title)
		return
	}
	printTitle(c.out, fmt.Sprintf("%s (%d)", title, len(accounts)))
	rows := make([][]string, len(accounts))
	for i, a := range accounts {
		rows[i] = []string{a.Login, orDash(a.Name), a.URL}
	}
	printTable(c.out, []string{"Login", "Name", "URL"}, rows)
}
