package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"kalvihub/internal/account"
	"kalvihub/pkg/utils"
)

var (
	apiBaseURL string
	apiKey     string
)

type ResponseError struct {
	Message string `json:"message"`
}

var apiServiceBase = func() *resty.Client {
	return resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("X-API-Key", apiKey).
		SetError(&ResponseError{}).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				return fmt.Errorf("%s", resp.Error().(*ResponseError).Message)
			}

			return nil
		})
}

var rootCmd = &cobra.Command{
	Use:   "kalvihub",
	Short: "Kalvihub CLI",
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage students",
}

type registerResponse struct {
	User              account.Account `json:"user"`
	VerificationToken string          `json:"verification_token"`
}

var userCreateCmd = &cobra.Command{
	Use:   "create <name> <email> <school>",
	Short: "Register a new student",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		password := utils.GenerateRandomString(10) + "aA1"

		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"name":     args[0],
				"email":    args[1],
				"school":   args[2],
				"grade":    "10",
				"password": password,
			}).
			SetResult(&registerResponse{}).
			Post("/api/auth/register")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		result := resp.Result().(*registerResponse)

		fmt.Println("User ID  :", result.User.ID)
		fmt.Println("Email    :", result.User.Email)
		fmt.Println("Password :", password)
		fmt.Println("Token    :", result.VerificationToken)
	},
}

var userVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Redeem a verification token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := apiServiceBase().R().
			SetBody(map[string]string{"token": args[0]}).
			Post("/api/auth/verify")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		fmt.Println("Email verified")
	},
}

var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email>",
	Short: "Request a password reset token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		type resetResponse struct {
			ResetToken string `json:"reset_token"`
			Message    string `json:"message"`
		}

		resp, err := apiServiceBase().R().
			SetBody(map[string]string{"email": args[0]}).
			SetResult(&resetResponse{}).
			Post("/api/auth/forgot-password")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		result := resp.Result().(*resetResponse)

		fmt.Println("Message :", result.Message)
		if result.ResetToken != "" {
			fmt.Println("Token   :", result.ResetToken)
		}
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show account statistics",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetResult(&account.Stats{}).
			Get("/api/admin/stats")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		stats := resp.Result().(*account.Stats)

		fmt.Println("Total users    :", stats.TotalUsers)
		fmt.Println("Verified users :", stats.VerifiedUsers)
		fmt.Println("Locked users   :", stats.LockedUsers)
	},
}

func main() {
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userVerifyCmd)
	userCmd.AddCommand(userResetPasswordCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(statsCmd)

	rootCmd.PersistentFlags().StringVarP(&apiBaseURL, "url", "u", "http://localhost:3000", "API base URL")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "key", "k", "", "API key")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
