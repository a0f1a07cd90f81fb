package db

import (
	"context"
	"fmt"
)

// Migrate applies the relational schema. Statements are idempotent so the
// call is safe on every process start. Referential-integrity cascades on
// campaign_leads are part of the schema contract: deleting a campaign or a
// lead removes its join rows without application logic.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if err := p.DB.WithContext(ctx).Exec(statement).Error; err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		image TEXT,
		email_verified TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TIMESTAMP NOT NULL,
		token TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		account_id TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		access_token TEXT,
		refresh_token TEXT,
		id_token TEXT,
		access_token_expires_at TIMESTAMP,
		refresh_token_expires_at TIMESTAMP,
		scope TEXT,
		password TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS verification_tokens (
		id TEXT PRIMARY KEY,
		identifier TEXT NOT NULL,
		value TEXT NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		company TEXT,
		status TEXT NOT NULL DEFAULT 'new',
		source TEXT,
		value INTEGER,
		notes TEXT,
		tags JSONB NOT NULL DEFAULT '[]',
		assigned_to TEXT,
		campaign_id UUID,
		last_contact_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		type TEXT NOT NULL,
		budget INTEGER,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		total_leads INTEGER NOT NULL DEFAULT 0,
		successful_leads INTEGER NOT NULL DEFAULT 0,
		success_rate INTEGER NOT NULL DEFAULT 0,
		progress INTEGER NOT NULL DEFAULT 0,
		metrics JSONB NOT NULL DEFAULT '{}',
		created_by TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS campaign_leads (
		id UUID PRIMARY KEY,
		campaign_id UUID NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
		lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'added',
		added_at TIMESTAMP NOT NULL DEFAULT now(),
		UNIQUE (campaign_id, lead_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_campaign_leads_campaign ON campaign_leads (campaign_id)`,
}
