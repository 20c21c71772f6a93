// Package mocks provides mock implementations of the service interfaces the
// web handlers depend on.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	billing := mocks.NewMockBillingAPI(ctrl)
//	billing.EXPECT().Plans(gomock.Any()).Return(plans, nil)
package mocks

// Billing surface used by the pricing, billing and permission pages:
// Plans, Subscription, Usage, Checkout, Cancel, Reactivate, History, Portal, CheckPermission, RecordUsage
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=billing_api_mock.go github.com/prepdeck/prepdeck-web/internal/http BillingAPI

// Dashboard lists.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=interview_lister_mock.go github.com/prepdeck/prepdeck-web/internal/http InterviewLister
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_lister_mock.go github.com/prepdeck/prepdeck-web/internal/http JobLister
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=resume_lister_mock.go github.com/prepdeck/prepdeck-web/internal/http ResumeLister

// Admin probe on the permission console.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=prober_mock.go github.com/prepdeck/prepdeck-web/internal/http Prober

// Sign-in and session lookups used by the auth handlers and middleware.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_service_mock.go github.com/prepdeck/prepdeck-web/internal/http AuthServiceInterface
