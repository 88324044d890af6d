package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"catalog-manager/core/dataerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name    string
		fields  SourceFields
		want    Source
		wantErr bool
	}{
		{
			name:   "Outpost",
			fields: SourceFields{Type: TypeOutpost, Kind: KindItem, Subtype: "Shop", Name: "Trading"},
			want:   OutpostSource{Base: Base{Kind: KindItem}, Subtype: "Shop", Name: OutpostTrading},
		},
		{
			name:    "Outpost with unknown name",
			fields:  SourceFields{Type: TypeOutpost, Kind: KindItem, Subtype: "Shop", Name: "Harbor"},
			wantErr: true,
		},
		{
			name:   "City",
			fields: SourceFields{Type: TypeCity, Kind: KindRecipe, Subtype: "Research", Name: "Almo's Lab"},
			want:   CitySource{Base: Base{Kind: KindRecipe}, Subtype: "Research", Name: "Almo's Lab"},
		},
		{
			name:    "Harvest with subtype",
			fields:  SourceFields{Type: TypeHarvest, Kind: KindItem, Subtype: "Daily", Name: "Wheat"},
			wantErr: true,
		},
		{
			name:   "Premium pack during sun festival",
			fields: SourceFields{Type: TypePremiumPack, Kind: KindItem, Subtype: "Sun Festival", Name: "Beach Set"},
			want:   PremiumPackSource{Base: Base{Kind: KindItem}, Event: EventSunFestival, Name: "Beach Set"},
		},
		{
			name:    "Premium pack without name",
			fields:  SourceFields{Type: TypePremiumPack, Kind: KindItem},
			wantErr: true,
		},
		{
			name:   "Anniversary boutique",
			fields: SourceFields{Type: TypeBoutique, Kind: KindUnlock, Subtype: "Anniversary"},
			want:   BoutiqueSource{Base: Base{Kind: KindUnlock}, Anniversary: true},
		},
		{
			name:    "Battle outside battle events",
			fields:  SourceFields{Type: TypeBattle, Kind: KindItem, Subtype: "Sun Festival", Name: "Crab"},
			wantErr: true,
		},
		{
			name:   "Battle",
			fields: SourceFields{Type: TypeBattle, Kind: KindRecipe, Fragment: true, Subtype: "Phantom Isle (part 2)", Name: "Wisp"},
			want:   BattleSource{Base: Base{Kind: KindRecipe, Fragment: true}, Event: EventPhantomIslePart2, Enemy: "Wisp"},
		},
		{
			name:    "Event market without event",
			fields:  SourceFields{Type: TypeEventMarket, Kind: KindItem},
			wantErr: true,
		},
		{
			name:   "Market",
			fields: SourceFields{Type: TypeMarket, Kind: KindItem, Name: "Materials"},
			want:   MarketSource{Base: Base{Kind: KindItem}},
		},
		{
			name:   "Feat with level",
			fields: SourceFields{Type: TypeFeat, Kind: KindItem, Subtype: "Garden", Name: "Green Thumb", Level: 3},
			want:   FeatSource{Base: Base{Kind: KindItem}, Subtype: "Garden", Name: "Green Thumb", Level: 3},
		},
		{
			name:    "Level on a non-feat",
			fields:  SourceFields{Type: TypeJourney, Kind: KindItem, Name: "Forest", Level: 2},
			wantErr: true,
		},
		{
			name:   "Outpost task",
			fields: SourceFields{Type: TypeTask, Kind: KindItem, Subtype: "Outpost", Name: "Coastal"},
			want:   TaskSource{Base: Base{Kind: KindItem}, Scope: TaskOutpost, Name: "Coastal"},
		},
		{
			name:    "Outpost task with unknown outpost",
			fields:  SourceFields{Type: TypeTask, Kind: KindItem, Subtype: "Outpost", Name: "Volcano"},
			wantErr: true,
		},
		{
			name:    "Task chest cannot be outpost scoped",
			fields:  SourceFields{Type: TypeTaskChest, Kind: KindItem, Subtype: "Outpost"},
			wantErr: true,
		},
		{
			name:   "Combine",
			fields: SourceFields{Type: TypeCombine, Kind: KindItem, Name: "Flour", ID: "12"},
			want:   CombineSource{Base: Base{Kind: KindItem}, Name: "Flour", ItemID: "12"},
		},
		{
			name:    "Unknown kind",
			fields:  SourceFields{Type: TypeShifty, Kind: "gift"},
			wantErr: true,
		},
		{
			name:    "Unknown type",
			fields:  SourceFields{Type: "Lottery", Kind: KindItem},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSource(tt.fields)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, dataerr.UnknownEnumValue))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fields, got.Fields())
		})
	}
}

func TestSourceListJSON(t *testing.T) {
	raw := `[{"type":"Task Chest","kind":"item","fragment":false,"subtype":"Daily"},` +
		`{"type":"Journey","kind":"recipe","fragment":true,"subtype":"Flooded Expedition","name":"Sunken Ruins"}]`

	var list SourceList
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.Len(t, list, 2)
	assert.Equal(t, TaskChestSource{Base: Base{Kind: KindItem}, Scope: TaskDaily}, list[0])
	assert.Equal(t, TypeJourney, list[1].Type())

	out, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestSourceListJSONRejectsIllegalVariant(t *testing.T) {
	var list SourceList
	err := json.Unmarshal([]byte(`[{"type":"Boutique","kind":"item","fragment":false,"name":"Shoes"}]`), &list)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataerr.UnknownEnumValue))
	assert.Contains(t, err.Error(), "source 0")
}

func TestSourceKeyOf(t *testing.T) {
	s := TaskSource{Base: Base{Kind: KindItem}, Scope: TaskDaily, Name: "Clean the shop? (weekly)"}
	key := SourceKeyOf(s)
	assert.Equal(t, SourceKey("Task_Daily_Clean the shop- (weekly)"), key)
	assert.False(t, strings.ContainsAny(string(key), "/#?"))

	assert.Equal(t, SourceKey("Shifty__"), SourceKeyOf(ShiftySource{}))
	assert.Equal(t, SourceKey("Combine__A-B-C"), MakeSourceKey(TypeCombine, "", "A/B#C"))
}

func TestSortSources(t *testing.T) {
	evercold := EventMarketSource{Event: EventEvercoldIslePart1}
	phantom2 := TaskChestSource{Scope: TaskScope(EventPhantomIslePart2)}
	phantom1 := JourneySource{Event: EventPhantomIslePart1, Name: "Z"}
	shopB := CitySource{Subtype: "Shop", Name: "Gismoshop"}
	shopA := CitySource{Subtype: "Shop", Name: "Ardent Forge"}

	sorted := SortSources(SourceList{evercold, phantom2, shopB, phantom1, shopA})
	assert.Equal(t, SourceList{shopA, shopB, evercold, phantom1, phantom2}, sorted)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Trading Outpost Shop", DisplayName(OutpostSource{Subtype: "Shop", Name: OutpostTrading}))
	assert.Equal(t, "Battle: Wisp (Phantom Isle (part 3))", DisplayName(BattleSource{Event: EventPhantomIslePart3, Enemy: "Wisp"}))
	assert.Equal(t, "Daily Task Chest", DisplayName(TaskChestSource{Scope: TaskDaily}))
}

func TestEventTypeCategory(t *testing.T) {
	assert.Equal(t, EventCategoryPhantomIsle, EventPhantomIslePart3.Category())
	assert.Equal(t, 3, EventPhantomIslePart3.Phase())
	assert.Equal(t, EventCategoryNone, EventType("Daily").Category())
	assert.Equal(t, 0, EventSunFestival.Phase())
}
