// Package order holds the Order aggregate and its owned sub-state: the
// lifecycle status machine, the package snapshot taken at checkout, the
// revision tracker, the payment subledger, the message thread, the dispute
// case, and the buyer's review.
//
// All mutation goes through the aggregate root so its invariants hold at
// every step: status changes follow the lifecycle graph, revisions never
// exceed the purchased quota, completion requires payment, and a refunded
// order requires refunded money. The sub-state types validate their own
// input but are only mutated by the Order methods.
package order
