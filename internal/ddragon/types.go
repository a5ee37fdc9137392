package ddragon

// Raw document shapes as served by the Data Dragon CDN. Champion, item and
// summoner spell documents arrive in a {data: {id: record}} envelope; runes
// are a bare array of path objects.

type Image struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
}

type ChampionInfo struct {
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Magic      int `json:"magic"`
	Difficulty int `json:"difficulty"`
}

type ChampionStats struct {
	HP                   float64 `json:"hp"`
	HPPerLevel           float64 `json:"hpperlevel"`
	MP                   float64 `json:"mp"`
	MPPerLevel           float64 `json:"mpperlevel"`
	MoveSpeed            float64 `json:"movespeed"`
	Armor                float64 `json:"armor"`
	ArmorPerLevel        float64 `json:"armorperlevel"`
	SpellBlock           float64 `json:"spellblock"`
	SpellBlockPerLevel   float64 `json:"spellblockperlevel"`
	AttackRange          float64 `json:"attackrange"`
	AttackDamage         float64 `json:"attackdamage"`
	AttackDamagePerLevel float64 `json:"attackdamageperlevel"`
	AttackSpeed          float64 `json:"attackspeed"`
	AttackSpeedPerLevel  float64 `json:"attackspeedperlevel"`
}

type ChampionSummary struct {
	ID      string        `json:"id"`
	Key     string        `json:"key"`
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Blurb   string        `json:"blurb"`
	Partype string        `json:"partype"`
	Info    ChampionInfo  `json:"info"`
	Stats   ChampionStats `json:"stats"`
	Image   Image         `json:"image"`
	Tags    []string      `json:"tags"`
}

type ChampionList struct {
	Version string                     `json:"version"`
	Data    map[string]ChampionSummary `json:"data"`
}

type SpellData struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Tooltip     string      `json:"tooltip"`
	MaxRank     int         `json:"maxrank"`
	Cooldown    []float64   `json:"cooldown"`
	Cost        []int       `json:"cost"`
	CostType    string      `json:"costType"`
	Range       []int64     `json:"range"`
	Effect      interface{} `json:"effect"`
	Vars        interface{} `json:"vars"`
	Image       Image       `json:"image"`
}

type PassiveData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       Image  `json:"image"`
}

type SkinData struct {
	ID      string `json:"id"`
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Chromas bool   `json:"chromas"`
}

type ChampionDetail struct {
	ChampionSummary
	Lore      string       `json:"lore"`
	AllyTips  []string     `json:"allytips"`
	EnemyTips []string     `json:"enemytips"`
	Spells    []SpellData  `json:"spells"`
	Passive   *PassiveData `json:"passive"`
	Skins     []SkinData   `json:"skins"`
}

type championDetailDoc struct {
	Data map[string]ChampionDetail `json:"data"`
}

type ItemGold struct {
	Base        int  `json:"base"`
	Total       int  `json:"total"`
	Sell        int  `json:"sell"`
	Purchasable bool `json:"purchasable"`
}

type ItemData struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Plaintext        string             `json:"plaintext"`
	From             []string           `json:"from"`
	Into             []string           `json:"into"`
	Image            Image              `json:"image"`
	Gold             ItemGold           `json:"gold"`
	Tags             []string           `json:"tags"`
	Maps             map[string]bool    `json:"maps"`
	Stats            map[string]float64 `json:"stats"`
	Depth            int                `json:"depth"`
	Consumed         bool               `json:"consumed"`
	ConsumeOnFull    bool               `json:"consumeOnFull"`
	InStore          *bool              `json:"inStore"`
	HideFromAll      bool               `json:"hideFromAll"`
	RequiredChampion string             `json:"requiredChampion"`
	RequiredAlly     string             `json:"requiredAlly"`
	SpecialRecipe    *int               `json:"specialRecipe"`
}

type ItemList struct {
	Version string              `json:"version"`
	Data    map[string]ItemData `json:"data"`
}

type RuneData struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Icon      string `json:"icon"`
	Name      string `json:"name"`
	ShortDesc string `json:"shortDesc"`
	LongDesc  string `json:"longDesc"`
}

type RuneSlotData struct {
	Runes []RuneData `json:"runes"`
}

type RunePathData struct {
	ID    int            `json:"id"`
	Key   string         `json:"key"`
	Icon  string         `json:"icon"`
	Name  string         `json:"name"`
	Slots []RuneSlotData `json:"slots"`
}

type SummonerSpellData struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Tooltip       string    `json:"tooltip"`
	MaxRank       int       `json:"maxrank"`
	Cooldown      []float64 `json:"cooldown"`
	Range         []int64   `json:"range"`
	SummonerLevel int       `json:"summonerLevel"`
	Modes         []string  `json:"modes"`
	Image         Image     `json:"image"`
}

type SummonerSpellList struct {
	Version string                       `json:"version"`
	Data    map[string]SummonerSpellData `json:"data"`
}
