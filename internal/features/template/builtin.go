package template

import "formdash/internal/features/widget"

// System templates shipped with the product. Widget ids here are placeholders;
// instantiation replaces them so two dashboards from the same template never
// share widget ids.

func builtinTemplates() []Template {
	return []Template{
		{
			ID:          "tpl-survey-analysis",
			Name:        "Survey Analysis",
			Description: "Response volume, question breakdown and raw answers",
			Category:    "survey_analysis",
			Icon:        "📊",
			IsSystem:    true,
			IsPublic:    true,
			Tags:        []string{"survey", "responses"},
			Theme:       widget.DefaultTheme(),
			Layout:      widget.DefaultLayout(),
			Widgets: []widget.Widget{
				{
					ID: "tpl-w1", Type: widget.TypeStatsCard, Size: widget.SizeSmall,
					Title:    "Total Responses",
					Position: widget.Position{X: 0, Y: 0, W: 3, H: 2},
					Data: map[string]interface{}{
						"value": 1234.0, "change": 12.0, "trend": "up",
						"subtitle": "vs last week",
					},
				},
				{
					ID: "tpl-w2", Type: widget.TypeStatsCard, Size: widget.SizeSmall,
					Title:    "Completion Rate",
					Position: widget.Position{X: 3, Y: 0, W: 3, H: 2},
					Data:     map[string]interface{}{"value": "87%", "change": 3.0, "trend": "up"},
				},
				{
					ID: "tpl-w3", Type: widget.TypeChart, Size: widget.SizeMedium,
					Title:    "Responses by Question",
					Position: widget.Position{X: 6, Y: 0, W: 6, H: 4},
					Data: map[string]interface{}{
						"labels": []interface{}{"Q1", "Q2", "Q3", "Q4", "Q5"},
						"values": []interface{}{120.0, 98.0, 115.0, 87.0, 104.0},
					},
					Config: map[string]interface{}{"chartType": "bar"},
				},
				{
					ID: "tpl-w4", Type: widget.TypeChart, Size: widget.SizeMedium,
					Title:    "Sentiment Split",
					Position: widget.Position{X: 0, Y: 2, W: 6, H: 4},
					Data: map[string]interface{}{
						"labels": []interface{}{"Positive", "Neutral", "Negative"},
						"values": []interface{}{62.0, 25.0, 13.0},
					},
					Config: map[string]interface{}{"chartType": "pie"},
				},
				{
					ID: "tpl-w5", Type: widget.TypeTable, Size: widget.SizeLarge,
					Title:    "Recent Responses",
					Position: widget.Position{X: 0, Y: 6, W: 12, H: 3},
					Data: map[string]interface{}{
						"columns": []interface{}{"Respondent", "Submitted", "Score"},
						"rows":    []interface{}{},
					},
				},
			},
		},
		{
			ID:          "tpl-customer-feedback",
			Name:        "Customer Feedback",
			Description: "Satisfaction score, recurring themes and feedback history",
			Category:    "customer_feedback",
			Icon:        "💬",
			IsSystem:    true,
			IsPublic:    true,
			Tags:        []string{"feedback", "satisfaction"},
			Theme:       widget.DefaultTheme(),
			Layout:      widget.DefaultLayout(),
			Widgets: []widget.Widget{
				{
					ID: "tpl-w1", Type: widget.TypeGauge, Size: widget.SizeMedium,
					Title:    "Satisfaction",
					Position: widget.Position{X: 0, Y: 0, W: 4, H: 3},
					Data:     map[string]interface{}{"value": 82.0, "min": 0.0, "max": 100.0, "unit": "%"},
				},
				{
					ID: "tpl-w2", Type: widget.TypeStatsCard, Size: widget.SizeSmall,
					Title:    "Feedback Items",
					Position: widget.Position{X: 4, Y: 0, W: 3, H: 2},
					Data:     map[string]interface{}{"value": 356.0, "change": -4.0, "trend": "down"},
				},
				{
					ID: "tpl-w3", Type: widget.TypeList, Size: widget.SizeMedium,
					Title:    "Top Themes",
					Position: widget.Position{X: 7, Y: 0, W: 5, H: 4},
					Data: map[string]interface{}{
						"items": []interface{}{
							map[string]interface{}{"text": "Delivery speed", "subtext": "84 mentions"},
							map[string]interface{}{"text": "Product quality", "subtext": "61 mentions"},
							map[string]interface{}{"text": "Support response time", "subtext": "42 mentions"},
						},
					},
					Config: map[string]interface{}{"style": "number"},
				},
				{
					ID: "tpl-w4", Type: widget.TypeTimeline, Size: widget.SizeLarge,
					Title:    "Feedback Timeline",
					Position: widget.Position{X: 0, Y: 4, W: 12, H: 4},
					Data: map[string]interface{}{
						"events": []interface{}{
							map[string]interface{}{"date": "2024-05-01", "title": "Quarterly survey sent", "description": "2,400 recipients"},
							map[string]interface{}{"date": "2024-05-15", "title": "Follow-up wave", "description": "Non-responders only"},
						},
					},
				},
			},
		},
		{
			ID:          "tpl-lead-scoring",
			Name:        "Lead Scoring",
			Description: "Pipeline quality at a glance",
			Category:    "lead_scoring",
			Icon:        "🎯",
			IsSystem:    true,
			IsPublic:    true,
			Tags:        []string{"leads", "sales"},
			Theme:       widget.DefaultTheme(),
			Layout:      widget.DefaultLayout(),
			Widgets: []widget.Widget{
				{
					ID: "tpl-w1", Type: widget.TypeMetric, Size: widget.SizeSmall,
					Title:    "Qualified Leads",
					Position: widget.Position{X: 0, Y: 0, W: 3, H: 2},
					Data:     map[string]interface{}{"value": 42.0, "target": 50.0},
				},
				{
					ID: "tpl-w2", Type: widget.TypeGauge, Size: widget.SizeMedium,
					Title:    "Avg Lead Score",
					Position: widget.Position{X: 3, Y: 0, W: 4, H: 3},
					Data:     map[string]interface{}{"value": 68.0, "min": 0.0, "max": 100.0},
				},
				{
					ID: "tpl-w3", Type: widget.TypeChart, Size: widget.SizeMedium,
					Title:    "Leads per Week",
					Position: widget.Position{X: 7, Y: 0, W: 5, H: 4},
					Data: map[string]interface{}{
						"labels": []interface{}{"W1", "W2", "W3", "W4"},
						"values": []interface{}{18.0, 25.0, 22.0, 31.0},
					},
					Config: map[string]interface{}{"chartType": "line"},
				},
				{
					ID: "tpl-w4", Type: widget.TypeTable, Size: widget.SizeLarge,
					Title:    "Top Leads",
					Position: widget.Position{X: 0, Y: 4, W: 12, H: 4},
					Data: map[string]interface{}{
						"columns": []interface{}{
							map[string]interface{}{"key": "name", "label": "Name"},
							map[string]interface{}{"key": "company", "label": "Company"},
							map[string]interface{}{"key": "score", "label": "Score"},
						},
						"rows": []interface{}{},
					},
				},
			},
		},
		{
			ID:          "tpl-nps-analysis",
			Name:        "NPS Analysis",
			Description: "Net promoter score with promoter and detractor split",
			Category:    "nps_analysis",
			Icon:        "❤️",
			IsSystem:    true,
			IsPublic:    true,
			Tags:        []string{"nps"},
			Theme:       widget.DefaultTheme(),
			Layout:      widget.DefaultLayout(),
			Widgets: []widget.Widget{
				{
					ID: "tpl-w1", Type: widget.TypeGauge, Size: widget.SizeMedium,
					Title:    "NPS",
					Position: widget.Position{X: 0, Y: 0, W: 4, H: 3},
					Data:     map[string]interface{}{"value": 46.0, "min": -100.0, "max": 100.0},
					Config: map[string]interface{}{
						"thresholds": []interface{}{
							map[string]interface{}{"value": 40.0, "color": "#ef4444"},
							map[string]interface{}{"value": 70.0, "color": "#f59e0b"},
							map[string]interface{}{"value": 100.0, "color": "#10b981"},
						},
					},
				},
				{
					ID: "tpl-w2", Type: widget.TypeChart, Size: widget.SizeMedium,
					Title:    "Score Distribution",
					Position: widget.Position{X: 4, Y: 0, W: 5, H: 4},
					Data: map[string]interface{}{
						"labels": []interface{}{"Promoters", "Passives", "Detractors"},
						"values": []interface{}{58.0, 30.0, 12.0},
					},
					Config: map[string]interface{}{"chartType": "donut"},
				},
				{
					ID: "tpl-w3", Type: widget.TypeStatsCard, Size: widget.SizeSmall,
					Title:    "Survey Responses",
					Position: widget.Position{X: 9, Y: 0, W: 3, H: 2},
					Data:     map[string]interface{}{"value": 2890.0, "change": 8.0, "trend": "up"},
				},
				{
					ID: "tpl-w4", Type: widget.TypeTextBlock, Size: widget.SizeMedium,
					Title:    "Highlights",
					Position: widget.Position{X: 0, Y: 4, W: 12, H: 2},
					Data: map[string]interface{}{
						"bullets": []interface{}{
							"Promoter share grew for the third month in a row",
							"Detractors cite onboarding friction most often",
						},
					},
				},
			},
		},
	}
}
