package procure

const invoicePrompt = `You are a Document Intelligence Specialist extracting data from an INVOICE.

Extract the following fields:
- invoice_number: Invoice number/ID
- vendor_name: Company name issuing the invoice
- invoice_date: Date of invoice
- due_date: Payment due date
- total_amount: Total amount due (numeric)
- line_items: Array of items with description, quantity, unit_price, line_total
- tax_amount: Tax amount if shown
- subtotal: Subtotal before tax

Return ONLY valid JSON:
{
    "invoice_number": "INV-12345",
    "vendor_name": "Office Supplies Co",
    "invoice_date": "2025-01-15",
    "due_date": "2025-02-15",
    "total_amount": 1250.00,
    "subtotal": 1150.00,
    "tax_amount": 100.00,
    "line_items": [
        {"description": "Office Chairs", "quantity": 5, "unit_price": 200.00, "line_total": 1000.00},
        {"description": "Desk Lamps", "quantity": 3, "unit_price": 50.00, "line_total": 150.00}
    ]
}`

const poPrompt = `You are extracting data from a PURCHASE ORDER.

Extract:
- po_number: Purchase order number
- vendor_name: Supplier name
- po_date: Date of PO
- requested_by: Person/department requesting
- line_items: Items with description, quantity, unit_price, line_total
- total_amount: Total PO amount

Return ONLY valid JSON:
{
    "po_number": "PO-2025-001",
    "vendor_name": "Office Supplies Co",
    "po_date": "2025-01-10",
    "requested_by": "IT Department",
    "total_amount": 1250.00,
    "line_items": [
        {"description": "Office Chairs", "quantity": 5, "unit_price": 200.00, "line_total": 1000.00},
        {"description": "Desk Lamps", "quantity": 3, "unit_price": 50.00, "line_total": 150.00}
    ]
}`

const requisitionPrompt = `You are extracting data from a PURCHASE REQUISITION.

Extract:
- requisition_number: Req number/ID
- requested_by: Employee/department
- request_date: Date of request
- department: Department code
- cost_center: Cost center if shown
- line_items: Items with description, quantity, estimated_price
- total_estimated_cost: Total estimated amount
- justification: Reason for purchase if shown

Return ONLY valid JSON:
{
    "requisition_number": "REQ-2025-001",
    "requested_by": "John Smith",
    "request_date": "2025-01-08",
    "department": "IT",
    "cost_center": "CC-IT-001",
    "total_estimated_cost": 1250.00,
    "justification": "Office furniture for new hires",
    "line_items": [
        {"description": "Office Chairs", "quantity": 5, "estimated_price": 200.00},
        {"description": "Desk Lamps", "quantity": 3, "estimated_price": 50.00}
    ]
}`

const receiptPrompt = `You are extracting data from a RECEIVING RECEIPT or GOODS RECEIPT.

Extract:
- receipt_number: Receipt/GR number
- po_number: Related PO number if shown
- received_date: Date goods received
- vendor_name: Supplier name
- received_items: Items received with quantity
- condition: Condition of goods (good, damaged, etc.)

Return ONLY valid JSON:
{
    "receipt_number": "GR-2025-001",
    "po_number": "PO-2025-001",
    "received_date": "2025-01-20",
    "vendor_name": "Office Supplies Co",
    "condition": "good",
    "received_items": [
        {"description": "Office Chairs", "quantity": 5},
        {"description": "Desk Lamps", "quantity": 3}
    ]
}`
