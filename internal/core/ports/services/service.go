package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and jobs.
type ServiceContainer struct {
	Document     DocumentSvcFacade
	Party        PartySvcFacade
	Credit       CreditSvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Reporting    ReportingService
	Backup       BackupService
	User         UserSvcFacade
	TokenService TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
