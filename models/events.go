package models

type AnalyticsEvent string

const (
	AnalyticsOrganizationUpdated AnalyticsEvent = "Updated an Organization"
	AnalyticsCheckoutStarted     AnalyticsEvent = "Checkout started"
	AnalyticsPlanUpgraded        AnalyticsEvent = "Plan upgraded"
	AnalyticsPlaygroundRun       AnalyticsEvent = "Ran a Playground completion"
	AnalyticsDatasetCreated      AnalyticsEvent = "Created a Dataset"
	AnalyticsChecklistCreated    AnalyticsEvent = "Created a Checklist"
	AnalyticsEvaluationCreated   AnalyticsEvent = "Created an Evaluation"
)
