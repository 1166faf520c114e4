// Package temporal holds the wall-clock driven systems: offline rewards,
// timed menu skills, daily rewards, the garden and the relic market restock.
//
// Nothing here schedules work. Every function takes now explicitly and is
// evaluated lazily when an action or a load asks for it.
package temporal
