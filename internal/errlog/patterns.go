package errlog

import "regexp"

// ErrorType classifies one kind of engine error message.
type ErrorType string

const (
	ChanceOutOfBounds         ErrorType = "CHANCE_OUT_OF_BOUNDS"
	AtLeastOneAIRecipient     ErrorType = "AT_LEAST_ONE_AI_RECIPIENT"
	ObjSetNotUsed             ErrorType = "OBJ_SET_NOT_USED"
	ObjNotSetUsed             ErrorType = "OBJ_NOT_SET_USED"
	DuplicateBuildingType     ErrorType = "DUPLICATE_BUILDING_TYPE"
	InvalidBuildingType       ErrorType = "INVALID_BUILDING_TYPE"
	EventOrphaned             ErrorType = "EVENT_ORPHANED"
	EventOrphanedWithCallers  ErrorType = "EVENT_ORPHANED_WITH_CALLERS"
	ObjectTypeNotValid        ErrorType = "OBJECT_TYPE_NOT_VALID"
	PostValidateReturnedFalse ErrorType = "POSTVALIDATE_RETURNED_FALSE"
	InconsistentScopes        ErrorType = "INCONSISTENT_SCOPES"
	InvalidSupportedVersion   ErrorType = "INVALID_SUPPORTED_VERSION"
	PathOver250Characters     ErrorType = "PATH_OVER_250_CHARACTERS"
	IllegalLocBreakCharacter  ErrorType = "ILLEGAL_LOC_BREAK_CHARACTER"
	MissingUTF8BOM            ErrorType = "MISSING_UTF8_BOM"
	EncodingError             ErrorType = "ENCODING_ERROR"
	InvalidCharacterInKeyName ErrorType = "INVALID_CHARACTER_IN_KEY_NAME"
	MissingColonSeparator     ErrorType = "MISSING_COLON_SEPARATOR"
	MissingQuotedStringValue  ErrorType = "MISSING_QUOTED_STRING_VALUE"
	UnexpectedLocToken        ErrorType = "UNEXPECTED_LOC_TOKEN"
	MissingLoc                ErrorType = "MISSING_LOC"
	MissingLocKey             ErrorType = "MISSING_LOC_KEY"
	MissingLocKeyKeyOnly      ErrorType = "MISSING_LOC_KEY_KEY_ONLY"
	UnrecognizedLocKeyNear    ErrorType = "UNRECOGNIZED_LOC_KEY_NEAR_FILE"
	UnrecognizedLocKey        ErrorType = "UNRECOGNIZED_LOC_KEY"
	UnrecognizedLocKeyNoFile  ErrorType = "UNRECOGNIZED_LOC_KEY_NO_FILE"
	LocStrDataError           ErrorType = "LOC_STR_DATA_ERROR"
	MissingLocalization       ErrorType = "MISSING_LOCALIZATION"
	LocKeyHashCollision       ErrorType = "LOC_KEY_HASH_COLLISION"
	DuplicateLocKey           ErrorType = "DUPLICATE_LOC_KEY"
	LocKeyOutsideLanguage     ErrorType = "TRYING_TO_IMPORT_LOC_KEY_OUTSIDE_OF_LANGUAGE"
	GuiFailedReadingProperty  ErrorType = "GUI_FAILED_READING_PROPERTY"
	GuiFailedConverting       ErrorType = "GUI_FAILED_CONVERTING_PROPERTY"
	GuiDuplicateChildWidget   ErrorType = "GUI_DUPLICATE_CHILD_WIDGET"
	GuiFailedParsingLocText   ErrorType = "GUI_FAILED_PARSING_LOCALIZED_TEXT"
	GuiPropertyNotHandled     ErrorType = "GUI_PROPERTY_NOT_HANDLED"
	GuiErrorSettingProperties ErrorType = "GUI_ERROR_SETTING_PROPERTIES"
	GuiErrors                 ErrorType = "GUI_ERRORS"
	GuiUnlocalizedText        ErrorType = "GUI_UNLOCALIZED_TEXT"
	FailedToReadKeyReference  ErrorType = "FAILED_TO_READ_KEY_REFERENCE"
	UnknownScriptElement      ErrorType = "UNKNOWN_SCRIPT_ELEMENT"
	InvalidNegativeValue      ErrorType = "INVALID_NEGATIVE_VALUE"
	UnknownGeneTemplate       ErrorType = "UNKNOWN_GENE_TEMPLATE"
	NoGeneWithKeyInGroup      ErrorType = "NO_GENE_WITH_KEY_IN_GROUP"
	GeneReadTwice             ErrorType = "GENE_READ_TWICE"
	PortraitInfoMissingGene   ErrorType = "PERSISTENT_PORTRAIT_INFO_MISSING_GENE"
	GeneCategoryDNAInfluenced ErrorType = "GENE_CATEGORY_DNA_INFLUENCED"
	InvalidColorBounds        ErrorType = "INVALID_COLOR_BOUNDS"
	ConceptCollision          ErrorType = "CONCEPT_COLLISION"
	InvalidLandedTitle        ErrorType = "INVALID_LANDED_TITLE"
	InteractionFilterError    ErrorType = "CHARACTER_INTERACTION_FILTER_ERROR"
	ScriptError               ErrorType = "SCRIPT_ERROR"
	UnknownError              ErrorType = "UNKNOWN_ERROR"
)

// patterns extracts structured fields from an error message. Each entry
// uses named groups (file, line, obj, key, key2, value, type, ...); the
// (?s) flag lets file paths never containing newlines stop at [^\n]
// classes while multiline messages still match.
var patterns = map[ErrorType]*regexp.Regexp{
	ChanceOutOfBounds:         regexp.MustCompile(`(?s)chance should be .* at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\)]+)\)`),
	AtLeastOneAIRecipient:     regexp.MustCompile(`(?s)needs at least one ai_recipient scripted at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\)]+)\)`),
	ObjSetNotUsed:             regexp.MustCompile(`(?P<type>[\w]+( target)?) '(?P<key>[^']+)' is set but is never used\.`),
	ObjNotSetUsed:             regexp.MustCompile(`(?P<type>[\w]+( target)?) '(?P<key>[^']+)' is used but is never set\.`),
	DuplicateBuildingType:     regexp.MustCompile(`Duplicate holding building type (?P<type>[^\s]+), for holding (?P<obj>[^\s]+)`),
	InvalidBuildingType:       regexp.MustCompile(`Invalid building type (?P<type>[^\s]+), for holding (?P<obj>[^\s]+)`),
	EventOrphaned:             regexp.MustCompile(`Event (?P<obj>[^\s]+) is orphaned`),
	EventOrphanedWithCallers:  regexp.MustCompile(`Event (?P<obj>[^\s]+) is scripted as an orphan, but has callers`),
	ObjectTypeNotValid:        regexp.MustCompile(`Object of type '(?P<type>[^']+)' is not valid for '(?P<obj>[^']+)'`),
	PostValidateReturnedFalse: regexp.MustCompile(`(?s)PostValidate of (?P<type>\w+) '(?P<key>[^']+)' returned false at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\[^:]+)(\[args#\d+\])?(:(?P<action>[^\)]+))?\)`),
	InconsistentScopes:        regexp.MustCompile(`(?s)Inconsistent (?P<type>.*) scopes \((?P<scope1>[^\s]+) vs\. (?P<scope2>[^\s]+)\) infile: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\[^:]+)(\[args#\d+\])?(:(?P<action>[^\)]+))?\)`),
	InvalidSupportedVersion:   regexp.MustCompile(`Invalid supported_version in file:\s+(?P<file>mod/[^\s]+)\s+line:\s*(?P<line>\d+)`),
	PathOver250Characters:     regexp.MustCompile(`(?P<file>.+) path is over \d+ characters long and will likely cause a crash on open\. Consider changing install path to something shorter`),
	IllegalLocBreakCharacter:  regexp.MustCompile("Illegal localization break character \\(`(?P<char>.)`\\) at line (?P<line>\\d+) and column (?P<column>\\d+) in (?P<file>[^\n]+)"),
	MissingUTF8BOM:            regexp.MustCompile(`Missing UTF8 BOM in '(?P<file>[^\n]+)'`),
	EncodingError:             regexp.MustCompile(`'(?P<file>[^'\s]+)' should be.*in utf-?8-?bom encoding`),
	InvalidCharacterInKeyName: regexp.MustCompile(`(?s)(?P<message>Invalid character\s+'(?P<char>[^']+))'\s+in key name\s+'(?P<key>[^']+)'.+in\s+(?P<file>[^\n]+)`),
	MissingColonSeparator:     regexp.MustCompile(`Missing colon.*separator at line (?P<line>\d+) and column (?P<column>\d+) in (?P<file>[^\n]+)`),
	MissingQuotedStringValue:  regexp.MustCompile(`Missing quoted string value for key '(?P<key>[^']+)' at line (?P<line>\d+) and column (?P<column>\d+) in (?P<file>[^\n]+)`),
	UnexpectedLocToken:        regexp.MustCompile(`Unexpected (localization )?token '(?P<key>[^']*)' at line (?P<line>\d+) and column (?P<column>\d+) in (?P<file>[^\n]+)`),
	MissingLoc:                regexp.MustCompile(`Missing loc( for)?( name)? '?(?P<value>[^']+)'?`),
	MissingLocKey:             regexp.MustCompile(`(?s)Missing loc key '(?P<key>[^']+)' for custom localization '(?P<obj>[^']+)' \(or variant\), at 'file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj2>[^']+)\)'`),
	MissingLocKeyKeyOnly:      regexp.MustCompile(`Missing loc key: '?(?P<key>[^']+)'?`),
	UnrecognizedLocKeyNear:    regexp.MustCompile(`(?s)Unrecognized loc key (?P<key>[^\s]+)\. Near file: (?P<file>[^\n]+) line: (?P<line>\d+)(\s\((?P<obj>[^\)]+)\))?`),
	UnrecognizedLocKey:        regexp.MustCompile(`(?s)Unrecognized loc key (?P<key>[^\s]+)\. file: (?P<file>[^\n]+) line: (?P<line>\d+)(\s\((?P<obj>[^\)]+)\))?`),
	UnrecognizedLocKeyNoFile:  regexp.MustCompile(`Unrecognized loc key (?P<key>[^\s]+)\. (?P<obj>[^\s]+)`),
	LocStrDataError:           regexp.MustCompile(`Data error in loc string '(?P<key>[^\s]+)'`),
	MissingLocalization:       regexp.MustCompile(`Key is missing localization: (?P<key>[^\s]+)`),
	LocKeyHashCollision:       regexp.MustCompile(`Localization key hash collision. Key '(?P<key>[^']+)' and '(?P<key2>[^']+)' have the (?P<message>.+)`),
	DuplicateLocKey:           regexp.MustCompile(`Duplicate localization key\. Key '(?P<key>[^']+)' is defined in both '(?P<file>[^\n]+)' and '(?P<file2>[^\n]+)'`),
	LocKeyOutsideLanguage:     regexp.MustCompile(`Trying to import a localization key outside of a language: (?P<key>[^\s]+)`),
	GuiFailedReadingProperty:  regexp.MustCompile(`failed reading property, at line (?P<line>\d+) in file (?P<file>[^\n]+)`),
	GuiFailedConverting:       regexp.MustCompile(`(?P<file>[^\n]+):(?P<line>\d+) - Failed converting property '(?P<property>[^']+)'\((?P<num>\d+)\)`),
	GuiDuplicateChildWidget:   regexp.MustCompile(`(?s)(?P<file>[^\n]+):(?P<line>\d+) - Child '(?P<value>[^']+)' already exists added at (?P<file2>[^\s]+):(?P<line2>\d+)\. Duplicate children with the same name override previous widgets\.`),
	GuiFailedParsingLocText:   regexp.MustCompile(`(?P<file>[^\n]+):(?P<line>\d+) - Failed parsing localized text: (?P<key>[^\s]+)`),
	GuiPropertyNotHandled:     regexp.MustCompile(`(?P<file>[^\n]+):(?P<line>\d+) - Property '(?P<key>[^']+)'\((?P<num>[^\)]+)\) not handled`),
	GuiErrorSettingProperties: regexp.MustCompile(`(?P<file>[^\n]+):(?P<line>\d+) - Error setting properties for '(?P<value>[^']*)' \((?P<type>[^\)]+)\)`),
	GuiErrors:                 regexp.MustCompile(`(?P<file>[^\n]+):(?P<line>\d+) - (?P<message>.+)`),
	GuiUnlocalizedText:        regexp.MustCompile(`Unlocalized text '(?P<text>[^']+)' at (?P<file>[^\n]+):(?P<line>\d+), either localize it or use the raw_text property instead of text`),
	FailedToReadKeyReference:  regexp.MustCompile(`(?s)Failed to read key reference: (?P<key>[^:]*): ([^,]*), .*line: (?P<line>\d+)( in file: (?P<file>[^"]+))`),
	UnknownScriptElement:      regexp.MustCompile(`(?s)Error: "((Unknown)|(Unexpected)) (?P<type>[^:]+): (?P<key>[^,]+), near line: (?P<line>\d+)( \(expanded from file: .+ line: \d+\))?" in file: "(?P<file>[^"]+)" near line: \d+`),
	InvalidNegativeValue:      regexp.MustCompile(`(?s)Error: "invalid negative value for '(?P<key>[^']+)': (.*), near line: (?P<line>\d+)( \(expanded from file: .+ line: \d+\))?" in file: "(?P<file>[^"]+)" near line: \d+`),
	GeneCategoryDNAInfluenced: regexp.MustCompile(`(?s)gene category '(?P<key>\S+)' cannot be influenced by DNA, at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>\S+)\)`),
	InvalidColorBounds:        regexp.MustCompile(`(?s)invalid color bounds\. Expected format \{ xmin, ymin, xmax, ymax \}\. (?P<message>.+?)\. file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>\S+)\)`),
	ConceptCollision:          regexp.MustCompile(`Trying to add a Game Concept or Alias \('(?P<key>[^']+)'\) from concept \('(?P<value>[^']+)'\) that collides.*\('(?P<key2>[^']+)'\)`),
	InvalidLandedTitle:        regexp.MustCompile(`(?s)Failed to fetch a valid landed title '(?P<value>[^']+)' at location 'file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\)]+)\)'`),
	InteractionFilterError:    regexp.MustCompile(`(?s)(?P<message>.*) at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\)]+)\)`),
	UnknownGeneTemplate:       regexp.MustCompile(`(?s)Unknown (?P<key>\S+) gene template (?P<value>\S+) at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>\S+)\)`),
	NoGeneWithKeyInGroup:      regexp.MustCompile(`(?s)No gene with key: (?P<key>\S+) in group human at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>\S+)\)`),
	GeneReadTwice:             regexp.MustCompile(`(?s)Trying to read gene (?P<key>\S+) a second time at file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>\S+)\)`),
	PortraitInfoMissingGene:   regexp.MustCompile(`(?s)Persistent portrait info missing gene (?P<key>\S+)! at 'file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>\S+)\)'`),
	ScriptError:               regexp.MustCompile(`(?s)(file: (?P<file>[^\n]+) line: (?P<line>\d+) \((?P<obj>[^\)\[]+)\))(\[args#\d+\])?`),
}

// sourceRelated maps an engine source (cpp file and line) to the error
// types it emits, most specific first. Built from observed CK3 logs.
var sourceRelated = map[string][]ErrorType{
	"character_interaction_filters.cpp:66": {ChanceOutOfBounds},
	"character_interaction_filters.cpp:71": {AtLeastOneAIRecipient},
	"jomini_script_system.cpp:303":         {ScriptError},
	"dlc_descriptor.cpp:70":                {InvalidSupportedVersion},
	"holding_type.cpp:118":                 {DuplicateBuildingType},
	"holding_type.cpp:138":                 {InvalidBuildingType},
	"jomini_effect.cpp:1136":               {ObjSetNotUsed},
	"jomini_effect.cpp:1152":               {ObjNotSetUsed},
	"jomini_eventmanager.cpp:370":          {EventOrphaned, EventOrphanedWithCallers},
	"jomini_custom_text.h:94":              {ObjectTypeNotValid},
	"jomini_custom_text.cpp:179":           {MissingLocKey, MissingLocKeyKeyOnly},
	"jomini_trigger.cpp:243":               {PostValidateReturnedFalse},
	"jomini_trigger.cpp:749":               {InconsistentScopes},
	"jomini_effect.cpp:139":                {PostValidateReturnedFalse},
	"artifact_type.cpp:25":                 {MissingLocKey, MissingLocKeyKeyOnly},
	"jomini_dynamicdescription.cpp:57":     {UnrecognizedLocKeyNear},
	"jomini_dynamicdescription.cpp:66":     {UnrecognizedLocKey, UnrecognizedLocKeyNoFile},
	"virtualfilesystem_physfs.cpp:1594":    {PathOver250Characters},
	"localization_reader.cpp:111":          {IllegalLocBreakCharacter},
	"localization_reader.cpp:402":          {MissingUTF8BOM},
	"localize.cpp:1854":                    {EncodingError},
	"localization_reader.cpp:445":          {InvalidCharacterInKeyName},
	"localization_reader.cpp:451":          {MissingColonSeparator},
	"localization_reader.cpp:535":          {MissingQuotedStringValue},
	"localization_reader.cpp:575":          {UnexpectedLocToken},
	"localization_reader.cpp:581":          {UnexpectedLocToken},
	"culture_template_data.cpp:304":        {MissingLoc},
	"culture_name_equivalency.cpp:101":     {MissingLoc},
	"characterhistory.cpp:807":             {MissingLoc},
	"pdx_data_localize.cpp:136":            {LocStrDataError},
	"pdx_data_localize.cpp:151":            {LocStrDataError},
	"pdx_locstring.cpp:93":                 {MissingLocalization},
	"pdx_localize.cpp:267":                 {LocKeyHashCollision},
	"pdx_localize.cpp:279":                 {DuplicateLocKey},
	"pdx_localize.cpp:933":                 {LocKeyOutsideLanguage},
	"pdx_gui_factory.cpp:317":              {GuiFailedReadingProperty},
	"pdx_gui_factory.cpp:937":              {GuiFailedConverting},
	"pdx_gui_factory.cpp:663":              {GuiDuplicateChildWidget},
	"pdx_gui_factory.cpp:1540":             {GuiErrorSettingProperties},
	"pdx_gui_widget.cpp:2154":              {GuiPropertyNotHandled},
	"pdx_gui_layout.cpp:137":               {GuiErrors},
	"pdx_gui_container.cpp:53":             {GuiErrors},
	"pdx_gui_container.cpp:142":            {GuiErrors},
	"pdx_gui_localize.cpp:207":             {GuiUnlocalizedText},
	"pdx_gui_localize.cpp:358":             {GuiFailedParsingLocText},
	"pdx_persistent_reader.cpp:216":        {FailedToReadKeyReference, UnknownScriptElement, InvalidNegativeValue},
	"portraitcontext.cpp:136":              {UnknownGeneTemplate},
	"portraitcontext.cpp:184":              {NoGeneWithKeyInGroup},
	"portraitcontext.cpp:239":              {GeneReadTwice},
	"portraitcontext.cpp:326":              {PortraitInfoMissingGene},
	"ethnicity.cpp:304":                    {GeneCategoryDNAInfluenced},
	"ethnicity.cpp:174":                    {InvalidColorBounds},
	"game_concepts.cpp:208":                {ConceptCollision},
	"title_links.cpp:214":                  {InvalidLandedTitle, InteractionFilterError},
}

// These engine sources emit data-factory dumps that do not parse as
// single errors yet.
var skippedSources = map[string]bool{
	"pdx_data_factory.cpp:1032": true,
	"pdx_data_factory.cpp:1344": true,
	"pdx_data_factory.cpp:1351": true,
	"pdx_data_factory.cpp:1413": true,
	"pdx_data_factory.cpp:1417": true,
}
