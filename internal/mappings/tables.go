package mappings

var schoolMap = map[string]string{
	"Allied Health":                  "AH",
	"Blair School of Music":          "BLAIR",
	"College of Arts and Science":    "A&S",
	"College of Connected Computing": "CCC",
	"Divinity School":                "DIV",
	"Division Unclassified Studies":  "DUS",
	"Fisk University":                "FISK",
	"Graduate School":                "GS",
	"Law School":                     "LAW",
	"Lipscomb":                       "LU",
	"Meharry Medical College":        "MEHRY",
	"Owen Grad School of Management": "OGSM",
	"Peabody College":                "PBDY",
	"School of Engineering":          "ENGIN",
	"School of Medicine":             "MED",
	"School of Nursing":              "NURS",
	"Sewanee: The Univ of the South": "SEW",
	"Tennessee State University":     "TSU",
	"Vanderbilt":                     "VANDY",
}

var careerMap = map[string]string{
	"Consortium":                     "CN",
	"Distance Learning Programs":     "DLP",
	"Div of Unclassified Studies":    "DUS",
	"Divinity":                       "DIV",
	"Divinity Doctorate":             "DD",
	"Engineering-Professional":       "ENGP",
	"Graduate":                       "GRAD",
	"Law":                            "LAW",
	"Medical Doctor":                 "MEDD",
	"Medical Masters/Prof Doctoral":  "MEDM",
	"Nursing":                        "NURS",
	"Owen Management":                "GSM",
	"Peabody-Professional":           "PBDP",
	"Undergraduate":                  "UGRD",
}

var componentMap = map[string]string{
	"Art Studio":                     "STD",
	"Class":                          "CLS",
	"Clerkship":                      "CL",
	"Clinical":                       "CLN",
	"Directed Study":                 "DIR",
	"Discussion":                     "DSC",
	"Dissertation Research":          "DIS",
	"Drill":                          "DRI",
	"Externship":                     "EXT",
	"Field Studies":                  "FLD",
	"Field Work":                     "FW",
	"Freshman Seminars":              "FWS",
	"Independent Study":              "IND",
	"Internship":                     "INT",
	"Laboratory":                     "LAB",
	"Lecture":                        "LEC",
	"Lecture and Discussion":         "LDC",
	"Lecture and Lab":                "LLB",
	"Lecture and Performance":        "LPR",
	"Lecture-Tech Based Instruction": "LTI",
	"Masters Thesis Research":        "THS",
	"Methods":                        "MTH",
	"Online Learning":                "ONL",
	"Performance":                    "PER",
	"Practicum":                      "PRC",
	"Project":                        "PRJ",
	"Publications":                   "PUB",
	"Research":                       "RES",
	"Selected/Special Topics":        "STP",
	"Seminar":                        "SEM",
	"Senior Scholar":                 "SSC",
	"Senior Thesis":                  "SRT",
	"Studies":                        "STU",
	"Subinternship":                  "SUB",
	"Supervision":                    "SUP",
	"Test 1":                         "TS1",
	"Test 2":                         "TS2",
	"Thesis Research":                "THE",
}

// subjectMap can be regenerated from the portal's subject multi-select with
// the mappings:subjects command.
var subjectMap = map[string]string{
	"African American and Diaspora Studies": "AADS",
	"Anthropology":                          "ANTH",
	"Art History":                           "HART",
	"Asian Studies":                         "ASIA",
	"Astronomy":                             "ASTR",
	"Biochemistry":                          "BCHM",
	"Biological Sciences":                   "BSCI",
	"Biomedical Engineering":                "BME",
	"Chemical Engineering":                  "CHBE",
	"Chemistry":                             "CHEM",
	"Civil Engineering":                     "CE",
	"Classical and Mediterranean Studies":   "CLAS",
	"Communication Studies":                 "CMST",
	"Computer Science":                      "CS",
	"Earth and Environmental Sciences":      "EES",
	"Economics":                             "ECON",
	"Electrical and Computer Engineering":   "ECE",
	"Engineering Science":                   "ES",
	"English":                               "ENGL",
	"French":                                "FREN",
	"German Studies":                        "GER",
	"History":                               "HIST",
	"Human and Organizational Development":  "HOD",
	"Jewish Studies":                        "JS",
	"Latin American Studies":                "LAS",
	"Mathematics":                           "MATH",
	"Mechanical Engineering":                "ME",
	"Medicine, Health, and Society":         "MHS",
	"Molecular Biology":                     "MB",
	"Music Composition":                     "MUSC",
	"Music Literature":                      "MUSL",
	"Neuroscience":                          "NSC",
	"Philosophy":                            "PHIL",
	"Physics":                               "PHYS",
	"Political Science":                     "PSCI",
	"Psychology":                            "PSY",
	"Religious Studies":                     "RLST",
	"Sociology":                             "SOC",
	"Spanish":                               "SPAN",
	"Special Education":                     "SPED",
	"Theatre":                               "THTR",
	"Women's and Gender Studies":            "WGS",
}

var attributeMap = map[string]string{
	"AXLE: Humanities and the Creative Arts": "HCA",
	"AXLE: International Cultures":           "INT",
	"AXLE: History and Culture of the US":    "US",
	"AXLE: Mathematics and Natural Sciences": "MNS",
	"AXLE: Social and Behavioral Sciences":   "SBS",
	"AXLE: Perspectives":                     "P",
	"First-Year Writing Seminar":             "FYWS",
	"Graduation Writing Requirement":         "GWR",
	"Honors Eligible":                        "HON",
	"Service Learning":                       "SL",
	"Study Abroad":                           "SA",
}
