package main

import (
	"fmt"
	"os"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var importIngredientsCmd = &cobra.Command{
	Use:   "import-ingredients",
	Short: "Load the ingredient catalogue from a name,measurement_unit CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		conf, err := loadConfig()
		if err != nil {
			return err
		}
		setUpLogger(conf)
		db, err := setupDatabase(conf)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		created, err := services.NewIngredientService(db).ImportCSV(f)
		if err != nil {
			return err
		}
		log.WithField("file", path).Infof("Imported %d ingredients", created)
		fmt.Printf("Imported %d new ingredients from %s\n", created, path)
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an account with the admin role",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		conf, err := loadConfig()
		if err != nil {
			return err
		}
		setUpLogger(conf)
		db, err := setupDatabase(conf)
		if err != nil {
			return err
		}

		user, err := services.NewUserService(db).CreateUser(services.RegisterInput{
			Email:     email,
			Username:  username,
			FirstName: "Admin",
			LastName:  username,
			Password:  password,
			Role:      models.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		fmt.Printf("Admin account created: %s (ID: %d)\n", user.Email, user.ID)
		fmt.Println("\nObtain a token with:")
		fmt.Printf("curl -X POST %s/api/auth/token/login \\\n", conf.BaseURL)
		fmt.Printf("  -H 'Content-Type: application/json' \\\n")
		fmt.Printf("  -d '{\"email\": \"%s\", \"password\": \"<password>\"}'\n", user.Email)
		return nil
	},
}

func init() {
	importIngredientsCmd.Flags().String("file", "data/ingredients.csv", "CSV file with name,measurement_unit rows")

	createAdminCmd.Flags().String("email", "", "Admin email")
	createAdminCmd.Flags().String("username", "admin", "Admin username")
	createAdminCmd.Flags().String("password", "", "Admin password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(importIngredientsCmd, createAdminCmd)
}
