package models

import (
	"slices"

	"catalog-manager/core/dataerr"
)

// SourceType is the wire name of a source variant.
type SourceType string

const (
	TypeOutpost       SourceType = "Outpost"
	TypeCity          SourceType = "City"
	TypeHarvest       SourceType = "Harvest"
	TypePremiumPack   SourceType = "Premium Pack"
	TypeBoutique      SourceType = "Boutique"
	TypeBattle        SourceType = "Battle"
	TypeJourney       SourceType = "Journey"
	TypeShifty        SourceType = "Shifty"
	TypeEventMarket   SourceType = "Event Market"
	TypeMissionReward SourceType = "Mission Reward"
	TypeMarket        SourceType = "Market"
	TypeFeat          SourceType = "Feat"
	TypeTask          SourceType = "Task"
	TypeTaskChest     SourceType = "Task Chest"
	TypeCombine       SourceType = "Combine"
	TypeShopLevel     SourceType = "Shop Level"
)

// SourceTypes lists every source type.
var SourceTypes = []SourceType{
	TypeOutpost, TypeCity, TypeHarvest, TypePremiumPack, TypeBoutique, TypeBattle,
	TypeJourney, TypeShifty, TypeEventMarket, TypeMissionReward, TypeMarket, TypeFeat,
	TypeTask, TypeTaskChest, TypeCombine, TypeShopLevel,
}

// ParseSourceType validates a source type name.
func ParseSourceType(s string) (SourceType, error) {
	return member("source type", s, SourceTypes)
}

// DropKind is what a source yields.
type DropKind string

const (
	KindItem   DropKind = "item"
	KindRecipe DropKind = "recipe"
	KindUnlock DropKind = "unlock"
)

var dropKinds = []DropKind{KindItem, KindRecipe, KindUnlock}

// ParseDropKind validates a drop kind.
func ParseDropKind(s string) (DropKind, error) {
	return member("kind", s, dropKinds)
}

// EventType is a single event, or one phase of a multi-phase event.
type EventType string

const (
	EventSunFestival       EventType = "Sun Festival"
	EventFloodedExpedition EventType = "Flooded Expedition"
	EventPhantomIslePart1  EventType = "Phantom Isle (part 1)"
	EventPhantomIslePart2  EventType = "Phantom Isle (part 2)"
	EventPhantomIslePart3  EventType = "Phantom Isle (part 3)"
	EventEvercoldIslePart1 EventType = "Evercold Isle (part 1)"
	EventEvercoldIslePart2 EventType = "Evercold Isle (part 2)"
)

// EventTypes lists every event type.
var EventTypes = []EventType{
	EventSunFestival, EventFloodedExpedition,
	EventPhantomIslePart1, EventPhantomIslePart2, EventPhantomIslePart3,
	EventEvercoldIslePart1, EventEvercoldIslePart2,
}

// ParseEventType validates an event type.
func ParseEventType(s string) (EventType, error) {
	return member("event", s, EventTypes)
}

// Category groups the phases of an event.
func (e EventType) Category() EventCategory {
	switch e {
	case EventEvercoldIslePart1, EventEvercoldIslePart2:
		return EventCategoryEvercoldIsle
	case EventPhantomIslePart1, EventPhantomIslePart2, EventPhantomIslePart3:
		return EventCategoryPhantomIsle
	case EventFloodedExpedition:
		return EventCategoryFloodedExpedition
	case EventSunFestival:
		return EventCategorySunFestival
	default:
		return EventCategoryNone
	}
}

// Phase returns the phase number of a multi-phase event, or 0.
func (e EventType) Phase() int {
	switch e {
	case EventEvercoldIslePart1, EventPhantomIslePart1:
		return 1
	case EventEvercoldIslePart2, EventPhantomIslePart2:
		return 2
	case EventPhantomIslePart3:
		return 3
	default:
		return 0
	}
}

// EventCategory is an event without its phase. The empty value means no event.
type EventCategory string

const (
	EventCategoryNone              EventCategory = ""
	EventCategorySunFestival       EventCategory = "Sun Festival"
	EventCategoryFloodedExpedition EventCategory = "Flooded Expedition"
	EventCategoryPhantomIsle       EventCategory = "Phantom Isle"
	EventCategoryEvercoldIsle      EventCategory = "Evercold Isle"
)

// EventCategories lists the real event categories.
var EventCategories = []EventCategory{
	EventCategorySunFestival, EventCategoryFloodedExpedition,
	EventCategoryPhantomIsle, EventCategoryEvercoldIsle,
}

// OutpostType names an outpost.
type OutpostType string

const (
	OutpostTrading    OutpostType = "Trading"
	OutpostCoastal    OutpostType = "Coastal"
	OutpostNaturalist OutpostType = "Naturalist"
	OutpostArcheology OutpostType = "Archeology"
)

var OutpostTypes = []OutpostType{OutpostTrading, OutpostCoastal, OutpostNaturalist, OutpostArcheology}

// OutpostSubtype is the outpost facility.
type OutpostSubtype string

var OutpostSubtypes = []OutpostSubtype{"Shop", "Exchange", "Research"}

// CitySubtype is the city facility.
type CitySubtype string

var CitySubtypes = []CitySubtype{"Shop", "Research"}

// CityBuilding names a city building.
type CityBuilding string

var CityBuildings = []CityBuilding{
	"Trading Guild", "Gismoshop", "Ardent Forge", "Almo's Lab",
	"Lily's Garden", "Chic Furnishings", "Chez Gustave",
}

// GardenSeed names a plant that can be harvested.
type GardenSeed string

var GardenSeeds = []GardenSeed{
	"Blue Tower", "Summer Glory", "Puff Flower", "Sunsugar Cane", "Pumpkin",
	"Dwarf Cocoa Seed", "Carrots", "Wheat", "Cinderwheat", "Everspring", "Rice",
	"Potatoes", "Croissant Tree", "Sunseekers", "Koko Tree", "Bonefinger",
	"Scalebulb", "Bana Tree", "Arcane Croissant Tree", "Coffee", "Strange Seed",
	"Even Stranger Seed", "Ashen Wheat", "White Megashroom",
}

// FeatSubtype is the feat tab.
type FeatSubtype string

var FeatSubtypes = []FeatSubtype{
	"Misc", "Crafting", "Selling", "Buying", "Trading", "City",
	"Shop", "Garden", "Event", "World", "Decor",
}

// BattleEvents are the events with battles.
var BattleEvents = []EventType{
	EventFloodedExpedition, EventPhantomIslePart2, EventPhantomIslePart3, EventEvercoldIslePart2,
}

// TaskScope is Daily, Outpost or an event type.
type TaskScope string

const (
	TaskDaily   TaskScope = "Daily"
	TaskOutpost TaskScope = "Outpost"
)

// Event returns the event of an event scoped task.
func (s TaskScope) Event() (EventType, bool) {
	e := EventType(s)
	return e, e.Category() != EventCategoryNone
}

const (
	boutiqueAnniversary = "Anniversary"
	marketMaterials     = "Materials"
)

func member[T ~string](field, v string, allowed []T) (T, error) {
	if slices.Contains(allowed, T(v)) {
		return T(v), nil
	}
	return "", dataerr.UnknownValue(field, v)
}

func optionalEvent(field, v string, allowed []EventType) (EventType, error) {
	if v == "" {
		return "", nil
	}
	return member(field, v, allowed)
}

func empty(field, v string) error {
	if v != "" {
		return dataerr.UnknownValue(field, v)
	}
	return nil
}
