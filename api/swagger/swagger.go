package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduStack School API",
        "description": "Multi-tenant school management core: fee ledger and AI content generation",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Fees Catalog", "description": "Fee types, groups, discounts and masters"},
        {"name": "Fees", "description": "Assignments, payments, verification, carry-forward, reminders"},
        {"name": "AI Content", "description": "AI-assisted syllabus, lesson and assessment generation"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated identity",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fees/types": {
            "get": {
                "tags": ["Fees Catalog"],
                "summary": "List fee types",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Fees Catalog"],
                "summary": "Create a fee type",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate code"}
                }
            }
        },
        "/fees/types/{id}": {
            "put": {
                "tags": ["Fees Catalog"],
                "summary": "Update a fee type",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesTypeRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/groups": {
            "get": {
                "tags": ["Fees Catalog"],
                "summary": "List fee groups",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Fees Catalog"],
                "summary": "Create a fee group",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesGroupRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/groups/{id}": {
            "put": {
                "tags": ["Fees Catalog"],
                "summary": "Update a fee group",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesGroupRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/discounts": {
            "get": {
                "tags": ["Fees Catalog"],
                "summary": "List fee discounts",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Fees Catalog"],
                "summary": "Create a fee discount",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesDiscountRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/discounts/{id}": {
            "put": {
                "tags": ["Fees Catalog"],
                "summary": "Update a fee discount",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesDiscountRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/masters": {
            "get": {
                "tags": ["Fees Catalog"],
                "summary": "List fee masters",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "academicYear", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Fees Catalog"],
                "summary": "Create a fee master",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesMasterRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/masters/{id}": {
            "put": {
                "tags": ["Fees Catalog"],
                "summary": "Update a fee master",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeesMasterRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Fees Catalog"],
                "summary": "Deactivate a fee master",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/fees/assignments/quick": {
            "post": {
                "tags": ["Fees"],
                "summary": "Bulk-assign a fee master to students or a class roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuickAssignRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/due": {
            "get": {
                "tags": ["Fees"],
                "summary": "List outstanding fee assignments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "groupId", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "academicYear", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/payments": {
            "get": {
                "tags": ["Fees"],
                "summary": "Search payments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "method", "in": "query", "type": "string"},
                    {"name": "verification", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Fees"],
                "summary": "Collect a direct payment against a fee assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CollectPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Payment exceeds balance"},
                    "409": {"description": "Assignment already settled"}
                }
            }
        },
        "/fees/payments/offline": {
            "post": {
                "tags": ["Fees"],
                "summary": "Record a bank-transfer payment pending verification",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OfflinePaymentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/payments/{id}": {
            "get": {
                "tags": ["Fees"],
                "summary": "Fetch one payment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/payments/{id}/verify": {
            "put": {
                "tags": ["Fees"],
                "summary": "Verify a pending offline payment and apply its balance",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already verified or rejected"}
                }
            }
        },
        "/fees/payments/{id}/reject": {
            "put": {
                "tags": ["Fees"],
                "summary": "Reject a pending offline payment without applying its balance",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already verified or rejected"}
                }
            }
        },
        "/fees/payments/{id}/receipt": {
            "get": {
                "tags": ["Fees"],
                "summary": "Download a payment receipt as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "PDF document"}}
            }
        },
        "/fees/carry-forward/preview": {
            "get": {
                "tags": ["Fees"],
                "summary": "Preview outstanding balances eligible for carry-forward",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fromAcademicYear", "in": "query", "required": true, "type": "string"},
                    {"name": "fromTerm", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/carry-forward": {
            "post": {
                "tags": ["Fees"],
                "summary": "Roll outstanding balances into fresh obligations",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CarryForwardRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/reminders": {
            "post": {
                "tags": ["Fees"],
                "summary": "Send payment reminders for outstanding assignments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendRemindersRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/fees/reminders/student/{id}": {
            "get": {
                "tags": ["Fees"],
                "summary": "List reminders sent to one student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ai/syllabus": {
            "get": {
                "tags": ["AI Content"],
                "summary": "List syllabi",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "subject", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["AI Content"],
                "summary": "Generate and persist a syllabus draft",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSyllabusRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "All providers failed or response malformed"},
                    "503": {"description": "No provider configured"}
                }
            }
        },
        "/ai/syllabus/{id}": {
            "get": {
                "tags": ["AI Content"],
                "summary": "Fetch one syllabus",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ai/syllabus/{id}/publish": {
            "put": {
                "tags": ["AI Content"],
                "summary": "Publish a syllabus draft",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/ai/syllabus/{id}/lessons": {
            "get": {
                "tags": ["AI Content"],
                "summary": "List lessons under a syllabus",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ai/lessons": {
            "post": {
                "tags": ["AI Content"],
                "summary": "Generate and persist a lesson plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateLessonRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ai/assessment-plan": {
            "post": {
                "tags": ["AI Content"],
                "summary": "Generate an assessment plan, optionally stored on a syllabus",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "syllabusId", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateAssessmentPlanRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ai/exam-prep": {
            "post": {
                "tags": ["AI Content"],
                "summary": "Generate exam preparation material",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateExamPrepRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "FeesTypeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "description": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["name", "code"]
        },
        "FeesGroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["name"]
        },
        "FeesDiscountRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "discount_type": {"type": "string", "enum": ["percentage", "fixed"]},
                "amount": {"type": "number"},
                "description": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["name", "code", "discount_type", "amount"]
        },
        "FeesMasterRequest": {
            "type": "object",
            "properties": {
                "fees_group_id": {"type": "string"},
                "fees_type_id": {"type": "string"},
                "amount": {"type": "number"},
                "due_date": {"type": "string"},
                "academic_year": {"type": "string"},
                "term": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["fees_group_id", "fees_type_id", "amount", "academic_year"]
        },
        "QuickAssignRequest": {
            "type": "object",
            "properties": {
                "fees_master_id": {"type": "string"},
                "student_ids": {"type": "array", "items": {"type": "string"}},
                "class_id": {"type": "string"},
                "discount_id": {"type": "string"},
                "due_date": {"type": "string"}
            },
            "required": ["fees_master_id"]
        },
        "CollectPaymentRequest": {
            "type": "object",
            "properties": {
                "fees_assign_id": {"type": "string"},
                "amount": {"type": "number"},
                "payment_method": {"type": "string", "enum": ["cash", "online", "cheque"]},
                "transaction_id": {"type": "string"},
                "cheque_number": {"type": "string"},
                "cheque_date": {"type": "string"},
                "note": {"type": "string"}
            },
            "required": ["fees_assign_id", "amount", "payment_method"]
        },
        "OfflinePaymentRequest": {
            "type": "object",
            "properties": {
                "fees_assign_id": {"type": "string"},
                "amount": {"type": "number"},
                "bank_name": {"type": "string"},
                "transaction_id": {"type": "string"},
                "note": {"type": "string"}
            },
            "required": ["fees_assign_id", "amount", "bank_name"]
        },
        "CarryForwardRequest": {
            "type": "object",
            "properties": {
                "from_academic_year": {"type": "string"},
                "from_term": {"type": "string"},
                "student_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["from_academic_year"]
        },
        "SendRemindersRequest": {
            "type": "object",
            "properties": {
                "student_ids": {"type": "array", "items": {"type": "string"}},
                "reminder_type": {"type": "string", "enum": ["email", "sms", "in_app"]},
                "message": {"type": "string"}
            },
            "required": ["student_ids", "reminder_type"]
        },
        "GenerateSyllabusRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "grade_level": {"type": "string"},
                "curriculum_standard": {"type": "string"},
                "duration_weeks": {"type": "integer"},
                "learning_objectives": {"type": "array", "items": {"type": "string"}},
                "additional_instructions": {"type": "string"}
            },
            "required": ["subject", "grade_level", "duration_weeks"]
        },
        "GenerateLessonRequest": {
            "type": "object",
            "properties": {
                "syllabus_id": {"type": "string"},
                "subject": {"type": "string"},
                "grade_level": {"type": "string"},
                "topic": {"type": "string"},
                "week_number": {"type": "integer"},
                "duration_minutes": {"type": "integer"},
                "learning_goals": {"type": "array", "items": {"type": "string"}},
                "additional_instructions": {"type": "string"}
            },
            "required": ["subject", "grade_level", "topic"]
        },
        "GenerateAssessmentPlanRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "grade_level": {"type": "string"},
                "duration_weeks": {"type": "integer"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "existing_plan": {"type": "string"},
                "additional_instructions": {"type": "string"}
            },
            "required": ["subject", "grade_level", "duration_weeks"]
        },
        "GenerateExamPrepRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "grade_level": {"type": "string"},
                "exam_type": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "weeks_until_exam": {"type": "integer"},
                "additional_instructions": {"type": "string"}
            },
            "required": ["subject", "grade_level"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
