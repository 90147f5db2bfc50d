// Package cli implementa el comando consultor (cobra): consultas a la Central de Deudores
// desde la terminal, con salida en tabla o JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
)

// Factory construye el caso de uso; close libera recursos (pool de base).
type Factory func(ctx context.Context) (uc *consulta.UseCase, close func(), err error)

const flagJSON = "json"

// NewRootCmd arma el árbol de comandos.
func NewRootCmd(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "consultor",
		Short:         "Consulta la Central de Deudores del BCRA",
		Long:          "Valida CUITs y consulta deudas, históricos y cheques rechazados en la Central de Deudores del BCRA.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool(flagJSON, false, "Salida en JSON")

	cmd.AddCommand(
		ValidarCmd(),
		DeudasCmd(factory),
		HistoricasCmd(factory),
		ChequesCmd(factory),
		ConsultasCmd(factory),
	)
	return cmd
}

// withUseCase construye el caso de uso, ejecuta fn y libera recursos.
func withUseCase(cmd *cobra.Command, factory Factory, fn func(ctx context.Context, uc *consulta.UseCase) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	uc, closeFn, err := factory(ctx)
	if err != nil {
		return fmt.Errorf("inicializar: %w", err)
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(ctx, uc)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool(flagJSON)
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
