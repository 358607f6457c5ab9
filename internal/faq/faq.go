package faq

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one question and answer shown in the storefront FAQ section.
type Entry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Loader defines the interface for loading FAQ content files.
type Loader interface {
	// Load reads a YAML FAQ file and returns its entries.
	Load(ctx context.Context, path string) ([]Entry, error)
}

type document struct {
	FAQs []Entry `yaml:"faqs"`
}

// Parse decodes a YAML document of the form `faqs: [{question, answer}]`.
// Entries missing either part are rejected.
func Parse(data []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ document: %w", err)
	}

	if len(doc.FAQs) == 0 {
		return nil, fmt.Errorf("FAQ document has no entries")
	}

	entries := make([]Entry, 0, len(doc.FAQs))
	for i, e := range doc.FAQs {
		e.Question = strings.TrimSpace(e.Question)
		e.Answer = strings.TrimSpace(e.Answer)
		if e.Question == "" || e.Answer == "" {
			return nil, fmt.Errorf("FAQ entry %d: question and answer are required", i)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Defaults returns the built-in FAQ used when no content file is available.
func Defaults() []Entry {
	return []Entry{
		{
			Question: "最短どれくらいで届けられますか？当日対応は可能ですか？",
			Answer:   "在庫状況とお届け先により異なりますが、店頭在庫での当日手配もご相談可能です。お急ぎの際はまずお電話（0120-000-000）でご希望の時間・エリアをお知らせください。",
		},
		{
			Question: "支払い方法は？領収書やインボイスは発行できますか？",
			Answer:   "現金・クレジット・振込に対応しています。領収書・インボイスの発行も可能です。",
		},
		{
			Question: "配達エリアと配送料を教えてください。",
			Answer:   "近隣は自社便、遠方は提携便でお届けします。配送料は距離・サイズで変動します。",
		},
		{
			Question: "色や雰囲気の指定はできますか？カタログ外も注文可能？",
			Answer:   "可能です。色味・用途・予算をメッセージ欄にご記入ください。",
		},
		{
			Question: "キャンセルや変更はできますか？",
			Answer:   "仕入れ状況により変動しますので、早めのご連絡をお願いします。",
		},
		{
			Question: "電話だけで申込みできますか？",
			Answer:   "はい、可能です。0120-000-000 で承ります。",
		},
	}
}
