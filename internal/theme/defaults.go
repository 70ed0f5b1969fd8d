package theme

// DefaultPresets は宣言順（paper, lab, night）の標準プリセットを返す。
// 先頭のプリセットが初期テーマになる。
func DefaultPresets() []Preset {
	return []Preset{
		{
			ID:   "paper",
			Name: "Paper",
			Tokens: map[Token]string{
				TokenBg:              "bg-[#FFFCF5]",
				TokenText:            "text-slate-800",
				TokenTextMuted:       "text-slate-500",
				TokenBodyText:        "text-slate-800",
				TokenSecondaryText:   "text-slate-700",
				TokenFont:            "font-serif",
				TokenNavBg:           "bg-[#FFFCF5]/95",
				TokenBorder:          "border-slate-200",
				TokenAccent:          "text-blue-700",
				TokenAccentBg:        "bg-blue-700",
				TokenCardBg:          "bg-white",
				TokenHighlight:       "bg-yellow-100",
				TokenLogoBadge:       "bg-slate-900 text-[#FFFCF5]",
				TokenPortraitBg:      "bg-slate-200",
				TokenCTAButton:       "bg-slate-900 hover:bg-blue-700",
				TokenBadgeConference: "bg-blue-600 text-white",
				TokenBadgeJournal:    "bg-emerald-600 text-white",
				TokenBadgePreprint:   "bg-amber-500 text-white",
				TokenBadgeSoftware:   "bg-violet-600 text-white",
			},
		},
		{
			ID:   "lab",
			Name: "Lab",
			Tokens: map[Token]string{
				TokenBg:              "bg-slate-50",
				TokenText:            "text-slate-900",
				TokenTextMuted:       "text-slate-500",
				TokenBodyText:        "text-slate-800",
				TokenSecondaryText:   "text-slate-700",
				TokenFont:            "font-sans",
				TokenNavBg:           "bg-white/90",
				TokenBorder:          "border-slate-200",
				TokenAccent:          "text-blue-600",
				TokenAccentBg:        "bg-blue-600",
				TokenCardBg:          "bg-white",
				TokenHighlight:       "bg-blue-50",
				TokenLogoBadge:       "bg-slate-900 text-[#FFFCF5]",
				TokenPortraitBg:      "bg-slate-200",
				TokenCTAButton:       "bg-slate-900 hover:bg-blue-700",
				TokenBadgeConference: "bg-blue-100 text-blue-800",
				TokenBadgeJournal:    "bg-emerald-100 text-emerald-800",
				TokenBadgePreprint:   "bg-amber-100 text-amber-800",
				TokenBadgeSoftware:   "bg-violet-100 text-violet-800",
			},
		},
		{
			ID:   "night",
			Name: "Night",
			Tokens: map[Token]string{
				TokenBg:              "bg-[#0F172A]",
				TokenText:            "text-slate-200",
				TokenTextMuted:       "text-slate-400",
				TokenBodyText:        "text-slate-300",
				TokenSecondaryText:   "text-slate-300",
				TokenFont:            "font-sans",
				TokenNavBg:           "bg-[#0F172A]/90",
				TokenBorder:          "border-slate-800",
				TokenAccent:          "text-sky-400",
				TokenAccentBg:        "bg-sky-500",
				TokenCardBg:          "bg-[#1E293B]",
				TokenHighlight:       "bg-indigo-500/20",
				TokenLogoBadge:       "bg-white text-slate-900",
				TokenPortraitBg:      "bg-slate-800",
				TokenCTAButton:       "bg-sky-600 hover:bg-sky-500",
				TokenBadgeConference: "bg-sky-900 text-sky-200",
				TokenBadgeJournal:    "bg-emerald-900 text-emerald-200",
				TokenBadgePreprint:   "bg-amber-900 text-amber-200",
				TokenBadgeSoftware:   "bg-violet-900 text-violet-200",
			},
		},
	}
}
