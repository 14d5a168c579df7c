package fixtures

// Owned fixture pools for seeding the directory. These used to live as
// module-level mutable arrays in the roster services; here they are
// explicit, read-only data handed to the seeder.

var Departments = []string{
	"Recursos Humanos", "Tecnología", "Ventas", "Marketing",
	"Finanzas", "Operaciones", "Servicio al Cliente", "Logística",
}

var Positions = []string{
	"Desarrollador Senior", "Desarrollador Junior", "Analista de Sistemas",
	"Gerente de Proyecto", "Diseñador UX/UI", "Administrador de BD",
	"Especialista en Marketing", "Analista Financiero", "Representante de Ventas",
	"Coordinador de Operaciones", "Especialista en RH", "Gerente de Departamento",
}

var FirstNames = []string{"Juan", "María", "Carlos", "Ana", "Luis", "Laura", "Pedro", "Sofía"}

var LastNames = []string{"García", "Rodríguez", "González", "Fernández", "López", "Martínez", "Pérez", "Sánchez"}

var Cities = []string{"Madrid", "Barcelona", "Valencia", "Sevilla"}

var Relationships = []string{"Cónyuge", "Padre", "Madre", "Hermano"}
