// Package model はドメインモデルを定義する。
package model

// Profile はホームページ所有者のプロフィールを表す。
// 起動時に1回だけ読み込まれ、以降は変更されない。
type Profile struct {
	Name         string   `yaml:"name" json:"name"`
	LocalName    string   `yaml:"local_name" json:"local_name"`
	Title        string   `yaml:"title" json:"title"`
	Affiliations []string `yaml:"affiliations" json:"affiliations"`
	Location     string   `yaml:"location" json:"location"`
	Bio          string   `yaml:"bio" json:"bio"`
	Email        string   `yaml:"email" json:"email"`
	Scholar      string   `yaml:"scholar" json:"scholar"`
	GitHub       string   `yaml:"github" json:"github"`
	OpenReview   string   `yaml:"openreview" json:"openreview"`
	SiteURL      string   `yaml:"site_url" json:"site_url"`
	CVURL        string   `yaml:"cv_url" json:"cv_url"`
	TeachingURL  string   `yaml:"teaching_url" json:"teaching_url"`
	SeminarsURL  string   `yaml:"seminars_url" json:"seminars_url"`
	// ContactNote は連絡先セクションに添える一文。空なら表示しない。
	ContactNote  string   `yaml:"contact_note" json:"contact_note"`
}

// NewsItem はニュースタイムラインの1件を表す。
// Contentには **太字** 記法を含めることができる。
type NewsItem struct {
	Date    string `yaml:"date" json:"date"`
	Content string `yaml:"content" json:"content"`
}

// ServiceRecord は学術サービス（査読など）のカテゴリと項目を表す。
type ServiceRecord struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Content はホームページに表示するすべての静的コンテンツ。
type Content struct {
	Profile      Profile         `yaml:"profile" json:"profile"`
	News         []NewsItem      `yaml:"news" json:"news"`
	Publications []Publication   `yaml:"publications" json:"publications"`
	Services     []ServiceRecord `yaml:"services" json:"services"`
}
