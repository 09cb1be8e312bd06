package service

import "zamanat_backend/internals/features/payments/enrollment/repository"

// Pipeline bundles the settlement components that share one store and one gateway.
type Pipeline struct {
	Store      repository.OrderStore
	Gateway    Gateway
	Initiator  *OrderInitiator
	Reconciler *StatusReconciler
}

func NewPipeline(store repository.OrderStore, gw Gateway, prov Provisioning, apiURL string) *Pipeline {
	return &Pipeline{
		Store:      store,
		Gateway:    gw,
		Initiator:  NewOrderInitiator(store, gw, apiURL),
		Reconciler: NewStatusReconciler(store, gw, prov),
	}
}
