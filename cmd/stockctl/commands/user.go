package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Despacho-api/internal/application/auth"
	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

var (
	userEmail    string
	userPassword string
	userName     string
	userRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Administración de usuarios",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Crear un usuario (el primer admin se crea por aquí)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		uc := auth.NewAuthUseCase(rt.store.Users, auth.JWTConfig{
			Secret:     rt.cfg.JWT.Secret,
			ExpMinutes: rt.cfg.JWT.Expiration,
			Issuer:     rt.cfg.JWT.Issuer,
		})
		u, err := uc.CreateUser(cmd.Context(), dto.CreateUserRequest{
			Email:    userEmail,
			Password: userPassword,
			Name:     userName,
			Role:     userRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (id %s, rol %s)\n", u.Email, u.ID, u.Role)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email del usuario")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password (mínimo 8 caracteres)")
	userAddCmd.Flags().StringVar(&userName, "name", "", "nombre visible")
	userAddCmd.Flags().StringVar(&userRole, "role", entity.RoleViewer, "admin | supervisor | viewer")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}
