package main

import portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"

type servicesHandle struct {
	Services *portssvc.ServiceContainer
	close    func()
}

func (h *servicesHandle) Close() {
	h.close()
}
