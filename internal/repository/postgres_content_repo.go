package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/scholarpage/internal/model"
)

// PostgresContentRepo はPostgreSQLを使用したコンテンツリポジトリ。
type PostgresContentRepo struct {
	db TxBeginner
}

// NewPostgresContentRepo はPostgresContentRepoを生成する。
func NewPostgresContentRepo(db TxBeginner) *PostgresContentRepo {
	return &PostgresContentRepo{db: db}
}

// Load はコンテンツ全体を1つの読み取り専用トランザクション内で読み込む。
func (r *PostgresContentRepo) Load(ctx context.Context) (*model.Content, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	c := &model.Content{}

	err = tx.QueryRowContext(ctx,
		`SELECT name, local_name, title, location, bio, email,
		        scholar, github, openreview, site_url, cv_url, teaching_url, seminars_url, contact_note
		 FROM profile WHERE id = 1`,
	).Scan(
		&c.Profile.Name, &c.Profile.LocalName, &c.Profile.Title, &c.Profile.Location,
		&c.Profile.Bio, &c.Profile.Email,
		&c.Profile.Scholar, &c.Profile.GitHub, &c.Profile.OpenReview,
		&c.Profile.SiteURL, &c.Profile.CVURL, &c.Profile.TeachingURL, &c.Profile.SeminarsURL,
		&c.Profile.ContactNote,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContentNotSeeded
	}
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}

	if c.Profile.Affiliations, err = loadAffiliations(ctx, tx); err != nil {
		return nil, err
	}
	if c.News, err = loadNews(ctx, tx); err != nil {
		return nil, err
	}
	if c.Publications, err = loadPublications(ctx, tx); err != nil {
		return nil, err
	}
	if c.Services, err = loadServices(ctx, tx); err != nil {
		return nil, err
	}

	return c, nil
}

func loadAffiliations(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM profile_affiliations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("所属の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var affiliations []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("所属のスキャンに失敗しました: %w", err)
		}
		affiliations = append(affiliations, name)
	}
	return affiliations, rows.Err()
}

func loadNews(ctx context.Context, tx *sql.Tx) ([]model.NewsItem, error) {
	rows, err := tx.QueryContext(ctx, `SELECT date_label, content FROM news_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("ニュースの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var news []model.NewsItem
	for rows.Next() {
		var n model.NewsItem
		if err := rows.Scan(&n.Date, &n.Content); err != nil {
			return nil, fmt.Errorf("ニュースのスキャンに失敗しました: %w", err)
		}
		news = append(news, n)
	}
	return news, rows.Err()
}

func loadPublications(ctx context.Context, tx *sql.Tx) ([]model.Publication, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, title, authors, venue, type, year, pdf_url, code_url
		 FROM publications ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("論文の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var pubs []model.Publication
	for rows.Next() {
		var p model.Publication
		var pubType string
		var pdf, code sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Authors, &p.Venue, &pubType, &p.Year, &pdf, &code); err != nil {
			return nil, fmt.Errorf("論文のスキャンに失敗しました: %w", err)
		}
		p.Type = model.PublicationType(pubType)
		p.PDF = nullStringValue(pdf)
		p.Code = nullStringValue(code)
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

func loadServices(ctx context.Context, tx *sql.Tx) ([]model.ServiceRecord, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT r.position, r.category, i.item
		 FROM service_records r
		 LEFT JOIN service_items i ON i.record_position = r.position
		 ORDER BY r.position, i.position`,
	)
	if err != nil {
		return nil, fmt.Errorf("サービス記録の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var services []model.ServiceRecord
	last := -1
	for rows.Next() {
		var position int
		var category string
		var item sql.NullString
		if err := rows.Scan(&position, &category, &item); err != nil {
			return nil, fmt.Errorf("サービス記録のスキャンに失敗しました: %w", err)
		}
		if len(services) == 0 || position != last {
			services = append(services, model.ServiceRecord{Category: category})
			last = position
		}
		if item.Valid {
			cur := &services[len(services)-1]
			cur.Items = append(cur.Items, item.String)
		}
	}
	return services, rows.Err()
}

// Replace は既存のコンテンツを削除し、指定のコンテンツで置き換える。
// 並び順は各テーブルのposition列に保存する。
func (r *PostgresContentRepo) Replace(ctx context.Context, c *model.Content) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"service_items", "service_records", "publications", "news_items", "profile_affiliations", "profile"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("%s の削除に失敗しました: %w", table, err)
		}
	}

	p := c.Profile
	_, err = tx.ExecContext(ctx,
		`INSERT INTO profile (id, name, local_name, title, location, bio, email,
		                      scholar, github, openreview, site_url, cv_url, teaching_url, seminars_url,
		                      contact_note, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())`,
		p.Name, p.LocalName, p.Title, p.Location, p.Bio, p.Email,
		p.Scholar, p.GitHub, p.OpenReview, p.SiteURL, p.CVURL, p.TeachingURL, p.SeminarsURL,
		p.ContactNote,
	)
	if err != nil {
		return fmt.Errorf("プロフィールの作成に失敗しました: %w", err)
	}

	for i, a := range p.Affiliations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profile_affiliations (position, name) VALUES ($1, $2)`, i, a,
		); err != nil {
			return fmt.Errorf("所属の作成に失敗しました: %w", err)
		}
	}

	for i, n := range c.News {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO news_items (position, date_label, content) VALUES ($1, $2, $3)`,
			i, n.Date, n.Content,
		); err != nil {
			return fmt.Errorf("ニュースの作成に失敗しました: %w", err)
		}
	}

	for i, pub := range c.Publications {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO publications (id, position, title, authors, venue, type, year, pdf_url, code_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			pub.ID, i, pub.Title, pub.Authors, pub.Venue, string(pub.Type), pub.Year,
			nullString(pub.PDF), nullString(pub.Code),
		); err != nil {
			return fmt.Errorf("論文 %d の作成に失敗しました: %w", pub.ID, err)
		}
	}

	for i, s := range c.Services {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO service_records (position, category) VALUES ($1, $2)`, i, s.Category,
		); err != nil {
			return fmt.Errorf("サービス記録の作成に失敗しました: %w", err)
		}
		for j, item := range s.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO service_items (record_position, position, item) VALUES ($1, $2, $3)`,
				i, j, item,
			); err != nil {
				return fmt.Errorf("サービス項目の作成に失敗しました: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullString は空文字列をSQL NULLに変換する。
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStringValue はsql.NullStringから文字列を取得する。
func nullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
