package services

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	User           UserSvcFacade
	Token          TokenSvcFacade
	GoogleIdentity GoogleIdentitySvcFacade
	Pool           PoolSvcFacade
	Bill           BillSvcFacade
	Balance        BalanceSvcFacade
	Rating         RatingSvcFacade
	Listing        ListingSvcFacade
	Notification   NotificationSvcFacade
}
