package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"catalog-manager/core/dataerr"
)

// SourceFields is the flat wire form shared by every source variant.
type SourceFields struct {
	Type     SourceType `json:"type"`
	Kind     DropKind   `json:"kind"`
	Fragment bool       `json:"fragment"`
	Subtype  string     `json:"subtype,omitempty"`
	Name     string     `json:"name,omitempty"`
	// Level is only used by feats.
	Level int `json:"level,omitempty"`
	// ID is only used by combine sources and holds the combined item id.
	ID string `json:"id,omitempty"`
}

// Source is one way to obtain an item. The set of implementations is closed.
type Source interface {
	Type() SourceType
	// Fields returns the wire form of the source.
	Fields() SourceFields
	// Drop returns the fields shared by every variant.
	Drop() Base
	isSource()
}

// Base holds the fields every source carries.
type Base struct {
	Kind     DropKind
	Fragment bool
}

func (b Base) Drop() Base { return b }

func (Base) isSource() {}

func (b Base) fields(t SourceType, subtype, name string) SourceFields {
	return SourceFields{Type: t, Kind: b.Kind, Fragment: b.Fragment, Subtype: subtype, Name: name}
}

type OutpostSource struct {
	Base
	Subtype OutpostSubtype
	Name    OutpostType
}

func (s OutpostSource) Type() SourceType { return TypeOutpost }
func (s OutpostSource) Fields() SourceFields {
	return s.fields(TypeOutpost, string(s.Subtype), string(s.Name))
}

type CitySource struct {
	Base
	Subtype CitySubtype
	Name    CityBuilding
}

func (s CitySource) Type() SourceType { return TypeCity }
func (s CitySource) Fields() SourceFields {
	return s.fields(TypeCity, string(s.Subtype), string(s.Name))
}

type HarvestSource struct {
	Base
	Seed GardenSeed
}

func (s HarvestSource) Type() SourceType     { return TypeHarvest }
func (s HarvestSource) Fields() SourceFields { return s.fields(TypeHarvest, "", string(s.Seed)) }

type PremiumPackSource struct {
	Base
	// Event is empty or EventSunFestival.
	Event EventType
	Name  string
}

func (s PremiumPackSource) Type() SourceType { return TypePremiumPack }
func (s PremiumPackSource) Fields() SourceFields {
	return s.fields(TypePremiumPack, string(s.Event), s.Name)
}

type BoutiqueSource struct {
	Base
	Anniversary bool
}

func (s BoutiqueSource) Type() SourceType { return TypeBoutique }
func (s BoutiqueSource) Fields() SourceFields {
	if s.Anniversary {
		return s.fields(TypeBoutique, boutiqueAnniversary, "")
	}
	return s.fields(TypeBoutique, "", "")
}

type BattleSource struct {
	Base
	Event EventType
	Enemy string
}

func (s BattleSource) Type() SourceType     { return TypeBattle }
func (s BattleSource) Fields() SourceFields { return s.fields(TypeBattle, string(s.Event), s.Enemy) }

type JourneySource struct {
	Base
	// Event is empty for regular journeys.
	Event EventType
	Name  string
}

func (s JourneySource) Type() SourceType     { return TypeJourney }
func (s JourneySource) Fields() SourceFields { return s.fields(TypeJourney, string(s.Event), s.Name) }

type ShiftySource struct {
	Base
	Crate string
}

func (s ShiftySource) Type() SourceType     { return TypeShifty }
func (s ShiftySource) Fields() SourceFields { return s.fields(TypeShifty, "", s.Crate) }

type EventMarketSource struct {
	Base
	Event EventType
	Crate string
}

func (s EventMarketSource) Type() SourceType { return TypeEventMarket }
func (s EventMarketSource) Fields() SourceFields {
	return s.fields(TypeEventMarket, string(s.Event), s.Crate)
}

type MissionRewardSource struct {
	Base
	Mission string
}

func (s MissionRewardSource) Type() SourceType { return TypeMissionReward }
func (s MissionRewardSource) Fields() SourceFields {
	return s.fields(TypeMissionReward, "", s.Mission)
}

type MarketSource struct {
	Base
}

func (s MarketSource) Type() SourceType     { return TypeMarket }
func (s MarketSource) Fields() SourceFields { return s.fields(TypeMarket, "", marketMaterials) }

type FeatSource struct {
	Base
	Subtype FeatSubtype
	Name    string
	Level   int
}

func (s FeatSource) Type() SourceType { return TypeFeat }
func (s FeatSource) Fields() SourceFields {
	f := s.fields(TypeFeat, string(s.Subtype), s.Name)
	f.Level = s.Level
	return f
}

type TaskSource struct {
	Base
	Scope TaskScope
	// Name is the task name, or the outpost type for outpost tasks.
	Name string
}

func (s TaskSource) Type() SourceType     { return TypeTask }
func (s TaskSource) Fields() SourceFields { return s.fields(TypeTask, string(s.Scope), s.Name) }

type TaskChestSource struct {
	Base
	// Scope is TaskDaily or an event.
	Scope TaskScope
	Name  string
}

func (s TaskChestSource) Type() SourceType { return TypeTaskChest }
func (s TaskChestSource) Fields() SourceFields {
	return s.fields(TypeTaskChest, string(s.Scope), s.Name)
}

type CombineSource struct {
	Base
	Name string
	// ItemID is the id of the combined item.
	ItemID string
}

func (s CombineSource) Type() SourceType { return TypeCombine }
func (s CombineSource) Fields() SourceFields {
	f := s.fields(TypeCombine, "", s.Name)
	f.ID = s.ItemID
	return f
}

type ShopLevelSource struct {
	Base
	Level string
}

func (s ShopLevelSource) Type() SourceType     { return TypeShopLevel }
func (s ShopLevelSource) Fields() SourceFields { return s.fields(TypeShopLevel, "", s.Level) }

// ParseSource builds the variant for f, rejecting fields that are illegal
// for its type.
func ParseSource(f SourceFields) (Source, error) {
	t, err := ParseSourceType(string(f.Type))
	if err != nil {
		return nil, err
	}
	kind, err := ParseDropKind(string(f.Kind))
	if err != nil {
		return nil, err
	}
	if f.Level != 0 && t != TypeFeat {
		return nil, dataerr.UnknownValue(string(t)+" level", strconv.Itoa(f.Level))
	}
	if f.ID != "" && t != TypeCombine {
		return nil, dataerr.UnknownValue(string(t)+" id", f.ID)
	}

	b := Base{Kind: kind, Fragment: f.Fragment}
	subtypeField, nameField := string(t)+" subtype", string(t)+" name"

	switch t {
	case TypeOutpost:
		sub, err := member(subtypeField, f.Subtype, OutpostSubtypes)
		if err != nil {
			return nil, err
		}
		name, err := member(nameField, f.Name, OutpostTypes)
		if err != nil {
			return nil, err
		}
		return OutpostSource{Base: b, Subtype: sub, Name: name}, nil

	case TypeCity:
		sub, err := member(subtypeField, f.Subtype, CitySubtypes)
		if err != nil {
			return nil, err
		}
		name, err := member(nameField, f.Name, CityBuildings)
		if err != nil {
			return nil, err
		}
		return CitySource{Base: b, Subtype: sub, Name: name}, nil

	case TypeHarvest:
		if err := empty(subtypeField, f.Subtype); err != nil {
			return nil, err
		}
		seed, err := member(nameField, f.Name, GardenSeeds)
		if err != nil {
			return nil, err
		}
		return HarvestSource{Base: b, Seed: seed}, nil

	case TypePremiumPack:
		ev, err := optionalEvent(subtypeField, f.Subtype, []EventType{EventSunFestival})
		if err != nil {
			return nil, err
		}
		if f.Name == "" {
			return nil, dataerr.UnknownValue(nameField, f.Name)
		}
		return PremiumPackSource{Base: b, Event: ev, Name: f.Name}, nil

	case TypeBoutique:
		if f.Subtype != "" && f.Subtype != boutiqueAnniversary {
			return nil, dataerr.UnknownValue(subtypeField, f.Subtype)
		}
		if err := empty(nameField, f.Name); err != nil {
			return nil, err
		}
		return BoutiqueSource{Base: b, Anniversary: f.Subtype == boutiqueAnniversary}, nil

	case TypeBattle:
		ev, err := member(subtypeField, f.Subtype, BattleEvents)
		if err != nil {
			return nil, err
		}
		return BattleSource{Base: b, Event: ev, Enemy: f.Name}, nil

	case TypeJourney:
		ev, err := optionalEvent(subtypeField, f.Subtype, EventTypes)
		if err != nil {
			return nil, err
		}
		return JourneySource{Base: b, Event: ev, Name: f.Name}, nil

	case TypeShifty:
		if err := empty(subtypeField, f.Subtype); err != nil {
			return nil, err
		}
		return ShiftySource{Base: b, Crate: f.Name}, nil

	case TypeEventMarket:
		ev, err := member(subtypeField, f.Subtype, EventTypes)
		if err != nil {
			return nil, err
		}
		return EventMarketSource{Base: b, Event: ev, Crate: f.Name}, nil

	case TypeMissionReward:
		if err := empty(subtypeField, f.Subtype); err != nil {
			return nil, err
		}
		return MissionRewardSource{Base: b, Mission: f.Name}, nil

	case TypeMarket:
		if err := empty(subtypeField, f.Subtype); err != nil {
			return nil, err
		}
		if f.Name != marketMaterials {
			return nil, dataerr.UnknownValue(nameField, f.Name)
		}
		return MarketSource{Base: b}, nil

	case TypeFeat:
		sub, err := member(subtypeField, f.Subtype, FeatSubtypes)
		if err != nil {
			return nil, err
		}
		return FeatSource{Base: b, Subtype: sub, Name: f.Name, Level: f.Level}, nil

	case TypeTask:
		scope, err := parseScope(subtypeField, f.Subtype, true)
		if err != nil {
			return nil, err
		}
		if scope == TaskOutpost && f.Name != "" {
			if _, err := member(nameField, f.Name, OutpostTypes); err != nil {
				return nil, err
			}
		}
		return TaskSource{Base: b, Scope: scope, Name: f.Name}, nil

	case TypeTaskChest:
		scope, err := parseScope(subtypeField, f.Subtype, false)
		if err != nil {
			return nil, err
		}
		return TaskChestSource{Base: b, Scope: scope, Name: f.Name}, nil

	case TypeCombine:
		if err := empty(subtypeField, f.Subtype); err != nil {
			return nil, err
		}
		return CombineSource{Base: b, Name: f.Name, ItemID: f.ID}, nil

	case TypeShopLevel:
		if err := empty(subtypeField, f.Subtype); err != nil {
			return nil, err
		}
		return ShopLevelSource{Base: b, Level: f.Name}, nil
	}

	return nil, dataerr.UnknownValue("source type", string(f.Type))
}

func parseScope(field, v string, allowOutpost bool) (TaskScope, error) {
	switch {
	case v == string(TaskDaily):
		return TaskDaily, nil
	case v == string(TaskOutpost) && allowOutpost:
		return TaskOutpost, nil
	}
	ev, err := member(field, v, EventTypes)
	if err != nil {
		return "", err
	}
	return TaskScope(ev), nil
}

// MustSource is ParseSource for literals known to be valid.
func MustSource(f SourceFields) Source {
	s, err := ParseSource(f)
	if err != nil {
		panic(err)
	}
	return s
}

// SourceList is an ordered list of sources with a JSON form of flat objects.
type SourceList []Source

func (l SourceList) MarshalJSON() ([]byte, error) {
	out := make([]SourceFields, len(l))
	for i, s := range l {
		out[i] = s.Fields()
	}
	return json.Marshal(out)
}

func (l *SourceList) UnmarshalJSON(data []byte) error {
	var raw []SourceFields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}
	out := make(SourceList, len(raw))
	for i, f := range raw {
		s, err := ParseSource(f)
		if err != nil {
			return fmt.Errorf("source %d: %w", i, err)
		}
		out[i] = s
	}
	*l = out
	return nil
}

// SourceKey identifies a source in URLs and in Database.Sources.
type SourceKey string

var keySanitizer = strings.NewReplacer("/", "-", "#", "-", "?", "-")

// MakeSourceKey derives the key for a type, subtype and name.
func MakeSourceKey(t SourceType, subtype, name string) SourceKey {
	return SourceKey(string(t) + "_" + subtype + "_" + keySanitizer.Replace(name))
}

// SourceKeyOf derives the key of s.
func SourceKeyOf(s Source) SourceKey {
	f := s.Fields()
	return MakeSourceKey(f.Type, f.Subtype, f.Name)
}

// EventOf returns the event a source belongs to, if any.
func EventOf(s Source) EventType {
	switch v := s.(type) {
	case PremiumPackSource:
		return v.Event
	case BattleSource:
		return v.Event
	case JourneySource:
		return v.Event
	case EventMarketSource:
		return v.Event
	case TaskSource:
		ev, _ := v.Scope.Event()
		return ev
	case TaskChestSource:
		ev, _ := v.Scope.Event()
		return ev
	case OutpostSource, CitySource, HarvestSource, BoutiqueSource, ShiftySource,
		MissionRewardSource, MarketSource, FeatSource, CombineSource, ShopLevelSource:
		return ""
	}
	return ""
}

// SourceLess orders sources without an event first, then by event category,
// phase and name.
func SourceLess(a, b Source) bool {
	ea, eb := EventOf(a), EventOf(b)
	ca, cb := ea.Category(), eb.Category()
	if ca != cb {
		if ca == EventCategoryNone {
			return true
		}
		if cb == EventCategoryNone {
			return false
		}
		return ca < cb
	}
	if pa, pb := ea.Phase(), eb.Phase(); pa != pb {
		return pa < pb
	}
	return a.Fields().Name < b.Fields().Name
}

// SortSources returns a sorted copy of l.
func SortSources(l SourceList) SourceList {
	out := make(SourceList, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool { return SourceLess(out[i], out[j]) })
	return out
}

// DisplayName renders a source for humans.
func DisplayName(s Source) string {
	switch v := s.(type) {
	case OutpostSource:
		return fmt.Sprintf("%s Outpost %s", v.Name, v.Subtype)
	case CitySource:
		return fmt.Sprintf("%s %s", v.Name, v.Subtype)
	case HarvestSource:
		return "Harvest " + string(v.Seed)
	case PremiumPackSource:
		return withEvent("Premium Pack: "+v.Name, v.Event)
	case BoutiqueSource:
		if v.Anniversary {
			return "Anniversary Boutique"
		}
		return "Boutique"
	case BattleSource:
		return withEvent("Battle: "+v.Enemy, v.Event)
	case JourneySource:
		return withEvent("Journey: "+v.Name, v.Event)
	case ShiftySource:
		if v.Crate != "" {
			return "Shifty: " + v.Crate
		}
		return "Shifty"
	case EventMarketSource:
		if v.Crate != "" {
			return fmt.Sprintf("%s Market: %s", v.Event, v.Crate)
		}
		return string(v.Event) + " Market"
	case MissionRewardSource:
		return "Mission: " + v.Mission
	case MarketSource:
		return "Market: " + marketMaterials
	case FeatSource:
		return fmt.Sprintf("%s Feat: %s (level %d)", v.Subtype, v.Name, v.Level)
	case TaskSource:
		if v.Name != "" {
			return fmt.Sprintf("%s Task: %s", v.Scope, v.Name)
		}
		return string(v.Scope) + " Task"
	case TaskChestSource:
		return string(v.Scope) + " Task Chest"
	case CombineSource:
		return "Combine: " + v.Name
	case ShopLevelSource:
		return "Shop Level " + v.Level
	}
	return string(s.Type())
}

func withEvent(s string, ev EventType) string {
	if ev == "" {
		return s
	}
	return s + " (" + string(ev) + ")"
}
