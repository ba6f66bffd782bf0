package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/martijn/usersvc/internal/core/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	addEmail string
	addAge   int
	clearYes bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user records",
	Long:  "Manage user records directly against the configured store",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := readPassword("Enter password: ")
		if err != nil {
			return err
		}

		confirmPassword, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}

		if password != confirmPassword {
			return fmt.Errorf("passwords do not match")
		}

		age := strconv.Itoa(addAge)
		user, err := services.UserService.Create(cmd.Context(), service.UserInput{
			Username: &username,
			Email:    &addEmail,
			Password: &password,
			Age:      &age,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("User '%s' created with id %s\n", user.Username, user.ID)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserService.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tAGE\tCREATED AT\tUPDATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				user.ID,
				user.Username,
				user.Email,
				user.Age,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
				user.UpdatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.UserService.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("User '%s' deleted\n", args[0])
		return nil
	},
}

var usersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			fmt.Print("Are you sure you want to delete ALL users? (yes/no): ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		n, err := services.UserService.Clear(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %d user(s)\n", n)
		return nil
	},
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func init() {
	usersAddCmd.Flags().StringVar(&addEmail, "email", "", "email address (required)")
	usersAddCmd.Flags().IntVar(&addAge, "age", 0, "age")
	_ = usersAddCmd.MarkFlagRequired("email")

	usersClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersClearCmd)
}
