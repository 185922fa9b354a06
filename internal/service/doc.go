// Package service provides the business logic layer for CardVault.
//
// CardService validates caller input and drives the aggregate repository;
// PhotoService coordinates uploaded photo files with their database
// references. Both publish change events on the EventBus so connected
// clients can refresh live.
//
// All operations are synchronous and run to completion once dispatched;
// an abandoned caller request does not cancel an in-flight store call.
package service
