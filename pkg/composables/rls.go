package composables

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citylingua/citylingua/pkg/configuration"
)

// ApplyTenantRLS binds the current tenant and principal to the transaction so
// the row-level policies can evaluate them. The settings are transaction-local
// (set_config with is_local = true) and vanish on commit or rollback.
func ApplyTenantRLS(ctx context.Context, tx pgx.Tx) error {
	if configuration.Use().RLSEnforce != "enforce" {
		return nil
	}
	tenantID, err := UseTenantID(ctx)
	if err != nil {
		return fmt.Errorf("rls requires tenant in context: %w", err)
	}
	if _, err := tx.Exec(ctx, "SELECT set_config('app.current_tenant', $1, true)", tenantID.String()); err != nil {
		return fmt.Errorf("failed to set rls tenant context: %w", err)
	}
	if principalID, err := UsePrincipalID(ctx); err == nil {
		if _, err := tx.Exec(ctx, "SELECT set_config('app.current_principal', $1, true)", principalID.String()); err != nil {
			return fmt.Errorf("failed to set rls principal context: %w", err)
		}
	}
	return nil
}
