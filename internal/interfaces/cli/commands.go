package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
	"github.com/jhoicas/consultor-bcra/internal/application/dto"
	"github.com/jhoicas/consultor-bcra/internal/domain"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// ValidarCmd valida el dígito verificador sin red.
func ValidarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validar CUIT",
		Short: "Validar el dígito verificador de una CUIT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := consulta.NewUseCase(nil).Validar(args[0])
			if jsonOutput(cmd) {
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				printValidacion(cmd.OutOrStdout(), out)
			}
			if !out.Valid {
				return fmt.Errorf("%w: %s", domain.ErrInvalidCUIT, args[0])
			}
			return nil
		},
	}
}

// DeudasCmd situación actual.
func DeudasCmd(factory Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "deudas CUIT",
		Short: "Deudas informadas en el último período",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUseCase(cmd, factory, func(ctx context.Context, uc *consulta.UseCase) error {
				out, err := uc.Deudas(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printDeudas(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

// HistoricasCmd últimos 24 meses; con --export guarda el archivo.
func HistoricasCmd(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "historicas CUIT",
		Short: "Deudas de los últimos 24 meses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("export")
			outPath, _ := cmd.Flags().GetString("out")
			return withUseCase(cmd, factory, func(ctx context.Context, uc *consulta.UseCase) error {
				if format != "" {
					return exportTo(ctx, cmd, uc, args[0], format, outPath)
				}
				out, err := uc.Historicas(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printHistoricas(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().String("export", "", "Exportar en lugar de mostrar: csv, xlsx o pdf")
	cmd.Flags().String("out", "", "Archivo de salida (por defecto deudas_historicas_{cuit}.{formato})")
	return cmd
}

func exportTo(ctx context.Context, cmd *cobra.Command, uc *consulta.UseCase, cuit, format, outPath string) error {
	f, err := uc.Export(ctx, cuit, entity.SourceHistoricas, format)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = f.Filename
	}
	if err := os.WriteFile(outPath, f.Content, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archivo generado: %s (%d bytes)\n", outPath, len(f.Content))
	return nil
}

// ChequesCmd cheques rechazados; con --token consulta Estadísticas BCRA.
func ChequesCmd(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cheques CUIT",
		Short: "Cheques rechazados",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			months, _ := cmd.Flags().GetInt("meses")
			token, _ := cmd.Flags().GetString("token")
			estadisticas, _ := cmd.Flags().GetBool("estadisticas")
			return withUseCase(cmd, factory, func(ctx context.Context, uc *consulta.UseCase) error {
				var (
					out *dto.ChequesDTO
					err error
				)
				if estadisticas || token != "" {
					out, err = uc.ChequesEstadisticas(ctx, args[0], token)
				} else {
					out, err = uc.Cheques(ctx, args[0], months)
				}
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printCheques(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().Int("meses", consulta.DefaultMonths, "Últimos N meses (máximo 120)")
	cmd.Flags().String("token", "", "Token de Estadísticas BCRA (usa el servicio de Estadísticas)")
	cmd.Flags().Bool("estadisticas", false, "Consultar Estadísticas BCRA con el token configurado (BCRA_TOKEN)")
	return cmd
}

// ConsultasCmd historial guardado en PostgreSQL.
func ConsultasCmd(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultas",
		Short: "Historial de consultas (requiere base configurada)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			cuit, _ := cmd.Flags().GetString("cuit")
			return withUseCase(cmd, factory, func(ctx context.Context, uc *consulta.UseCase) error {
				out, err := uc.Historial(ctx, cuit, limit)
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printHistorial(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().Int("limit", consulta.DefaultHistLimit, "Cantidad de consultas")
	cmd.Flags().String("cuit", "", "Filtrar por CUIT")
	return cmd
}
