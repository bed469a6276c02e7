/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

type Component string

const (
	TransactionInitiatorComponent Component = "frontend.transaction-initiator"
	ResponseRetrieverComponent    Component = "frontend.response-retriever"
	SessionManagerComponent       Component = "frontend.session-manager"
	SessionStoreComponent         Component = "frontend.session-store"
	BackendClientComponent        Component = "frontend.backend-client"
	JarmVerifierComponent         Component = "frontend.jarm-verifier"
	MdocVerifierComponent         Component = "frontend.mdoc-verifier"
)
